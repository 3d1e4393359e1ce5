package main

import (
	"fmt"
	"time"

	"github.com/maplefeline/npiece/piece"
	"github.com/montanaflynn/stats"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"
)

// Decode is one logged decode request. Piece is nil when Valid is false.
type Decode struct {
	gorm.Model

	DecodeID uuid.UUID    `gorm:"<-:create;type:varchar;size:36;uniqueIndex"`
	Raw      uint8        `gorm:"<-:create;not null"`
	Piece    *piece.Piece `gorm:"<-:create;type:smallint"`
	Valid    bool         `gorm:"<-:create;index"`
}

type decodeSummary struct {
	Count   int
	Invalid int
	Mean    float64
	Median  float64
	Mode    []float64
	Types   map[string]int
}

func decodeRaw(raw uint8) (*Decode, error) {
	decode := Decode{DecodeID: uuid.NewV4(), Raw: raw}
	p, decodeErr := piece.FromRaw(raw)
	if decodeErr == nil {
		decode.Piece = &p
		decode.Valid = true
	}
	if err := db.Create(&decode).Error; err != nil {
		return nil, err
	}
	return &decode, decodeErr
}

func getDecode(id uuid.UUID) (*Decode, error) {
	var decode Decode
	if err := db.First(&decode, Decode{DecodeID: id}).Error; err != nil {
		return nil, err
	}
	return &decode, nil
}

func decodeStats() (decodeSummary, error) {
	var decodes []Decode
	if err := db.Select("raw", "valid").Find(&decodes).Error; err != nil {
		return decodeSummary{}, err
	}
	summary := decodeSummary{Count: len(decodes), Types: map[string]int{}, Mode: []float64{}}
	if len(decodes) == 0 {
		return summary, nil
	}
	raws := make([]int, 0, len(decodes))
	for _, decode := range decodes {
		raws = append(raws, int(decode.Raw))
		if !decode.Valid {
			summary.Invalid++
			continue
		}
		t, _ := piece.TypeFromBits(decode.Raw & piece.TypeMask)
		summary.Types[t.String()]++
	}
	data := stats.LoadRawData(raws)
	var err error
	if summary.Mean, err = stats.Mean(data); err != nil {
		return decodeSummary{}, fmt.Errorf("mean of decodes: %w", err)
	}
	if summary.Median, err = stats.Median(data); err != nil {
		return decodeSummary{}, fmt.Errorf("median of decodes: %w", err)
	}
	if summary.Mode, err = stats.Mode(data); err != nil {
		return decodeSummary{}, fmt.Errorf("mode of decodes: %w", err)
	}
	return summary, nil
}

func pruneDecodes(before time.Time) error {
	return db.Unscoped().Where("created_at < ?", before).Delete(&Decode{}).Error
}
