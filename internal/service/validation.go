package service

import (
	"time"

	"github.com/doctornein/dynasty-tokens/internal/model"
	"github.com/doctornein/dynasty-tokens/internal/repository"
)

func normalizePage(p repository.Page) repository.Page {
	limit := p.Limit
	offset := p.Offset
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return repository.Page{Limit: limit, Offset: offset}
}

func isValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func isValidCategory(cat model.ArenaStatCategory) bool {
	switch cat {
	case model.CategoryPoints, model.CategoryRebounds, model.CategoryAssists,
		model.CategorySteals, model.CategoryBlocks:
		return true
	default:
		return false
	}
}
