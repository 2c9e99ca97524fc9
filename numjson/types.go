// Package numjson is the JSON projection of document numbering definitions.
//
// The payload shape is the NumberingsJSON record exchanged with host
// applications:
//
//	{
//	  "abstractNums": [{"id": 0, "levels": [...], "numStyleLink": null, "styleLink": null}],
//	  "numberings":   [{"id": 1, "abstractNumId": 0, "levelOverrides": [...]}]
//	}
//
// Nullable fields always serialize as an explicit null and
// paragraphProperty objects are carried verbatim, so decoding and
// re-encoding a payload yields a structurally identical document.
package numjson

import (
	json "github.com/goccy/go-json"
)

// Numberings is the NumberingsJSON payload.
type Numberings struct {
	AbstractNums []AbstractNumbering `json:"abstractNums" validate:"dive"`
	Numberings   []Numbering         `json:"numberings" validate:"dive"`
}

// AbstractNumbering is AbstractNumberingJSON.
type AbstractNumbering struct {
	ID           int     `json:"id" validate:"min=0"`
	Levels       []Level `json:"levels" validate:"dive"`
	NumStyleLink *string `json:"numStyleLink"`
	StyleLink    *string `json:"styleLink"`
}

// Level is LevelJSON.
type Level struct {
	Level             int             `json:"level" validate:"min=0"`
	Start             int             `json:"start"`
	Format            string          `json:"format" validate:"required"`
	Text              string          `json:"text"`
	Jc                string          `json:"jc" validate:"omitempty,oneof=left center right both start end distribute"`
	PStyle            *string         `json:"pstyle"`
	Suffix            string          `json:"suffix" validate:"omitempty,oneof=tab nothing space none"`
	ParagraphProperty json.RawMessage `json:"paragraphProperty"`
}

// Numbering is NumberingJSON, a numbering instance.
type Numbering struct {
	ID             int             `json:"id" validate:"min=0"`
	AbstractNumID  int             `json:"abstractNumId" validate:"min=0"`
	LevelOverrides []LevelOverride `json:"levelOverrides" validate:"dive"`
}

// LevelOverride is LevelOverrideJSON.
type LevelOverride struct {
	Level         int    `json:"level" validate:"min=0"`
	OverrideStart *int   `json:"overrideStart"`
	OverrideLevel *Level `json:"overrideLevel"`
}

// paragraphProperty is the subset of ParagraphPropertyJSON the numbering
// engine understands. Everything else is carried in the raw message.
type paragraphProperty struct {
	Alignment   *string      `json:"alignment,omitempty"`
	Indent      *indent      `json:"indent,omitempty"`
	LineSpacing *lineSpacing `json:"lineSpacing,omitempty"`
}

type indent struct {
	Start         *int           `json:"start,omitempty"`
	End           *int           `json:"end,omitempty"`
	SpecialIndent *specialIndent `json:"specialIndent,omitempty"`
}

type specialIndent struct {
	Type string `json:"type"` // firstLine or hanging
	Val  int    `json:"val"`
}

type lineSpacing struct {
	Before *int `json:"before,omitempty"`
	After  *int `json:"after,omitempty"`
	Line   *int `json:"line,omitempty"`
}
