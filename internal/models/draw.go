package models

import (
	"encoding/json"
	"strings"
)

// DrawRecord represents one physical lottery draw. DrawTime holds either
// a clock time ("8:30 PM") or a coarse label ("Day" / "Night") exactly as
// the source delivered it. DrawNumber is optional; Numbers keep their
// source order because position is significant.
type DrawRecord struct {
	DrawDate   string  `json:"drawDate" bson:"drawDate"`
	DrawTime   string  `json:"drawTime" bson:"drawTime"`
	DrawNumber *string `json:"drawNumber" bson:"drawNumber,omitempty"`
	Numbers    []int   `json:"numbers" bson:"numbers"`
}

// DisplayDrawNumber returns the draw number or a placeholder when the
// source omitted it. A missing draw number is valid data, not an error.
func (d DrawRecord) DisplayDrawNumber() string {
	if d.DrawNumber == nil || *d.DrawNumber == "" {
		return "Not available"
	}
	return *d.DrawNumber
}

// GameAggregate is the uniform representation of one logical game on one
// island. A game with a single draw and a game with day/night draws use
// the same shape; a single draw is simply a one-element Draws slice.
type GameAggregate struct {
	Island   string       `json:"island" bson:"island"`
	GameName string       `json:"gameName" bson:"gameName"`
	Draws    []DrawRecord `json:"draws" bson:"draws"`
	Jackpot  *string      `json:"jackpot" bson:"jackpot,omitempty"`
}

// DrawByTime locates a sub-draw by its DrawTime label, matched
// case-insensitively like everywhere else labels are compared. Source
// ordering is not guaranteed to be day-first, so consumers must select
// by label, not by position.
func (g GameAggregate) DrawByTime(label string) (DrawRecord, bool) {
	for _, draw := range g.Draws {
		if strings.EqualFold(draw.DrawTime, label) {
			return draw, true
		}
	}
	return DrawRecord{}, false
}

// RawGamePayload is the polymorphic shape delivered by the upstream
// results source. Flat single-draw payloads carry draw fields directly;
// multi-draw payloads carry an explicit draws array. The game service is
// the only place allowed to interpret this shape.
type RawGamePayload struct {
	Game       string          `json:"game"`
	Island     string          `json:"island"`
	DrawDate   string          `json:"draw_date"`
	DrawTime   string          `json:"draw_time"`
	DrawNumber *string         `json:"draw_number"`
	Numbers    []int           `json:"numbers"`
	Jackpot    json.RawMessage `json:"jackpot"`
	Draws      []RawDraw       `json:"draws"`
}

// RawDraw is one entry of a multi-draw payload.
type RawDraw struct {
	DrawDate   string  `json:"draw_date"`
	DrawTime   string  `json:"draw_time"`
	DrawNumber *string `json:"draw_number"`
	Numbers    []int   `json:"numbers"`
}

// PayloadShape tags the two raw payload forms plus the malformed case.
type PayloadShape int

const (
	PayloadShapeUnknown PayloadShape = iota
	PayloadShapeSingleDraw
	PayloadShapeMultiDraw
)

// Shape classifies the payload exactly once at the ingestion boundary.
// An explicit draws array wins over flat fields.
func (p RawGamePayload) Shape() PayloadShape {
	if p.Draws != nil {
		return PayloadShapeMultiDraw
	}
	if p.Numbers != nil {
		return PayloadShapeSingleDraw
	}
	return PayloadShapeUnknown
}
