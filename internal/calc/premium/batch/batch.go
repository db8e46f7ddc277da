package batch

import (
	"errors"
	"fmt"

	"Radiant/internal/calc/dashboard"
)

var (
	ErrNoItems      = errors.New("no items")
	ErrTooManyItems = errors.New("too many items")
)

type Input struct {
	Items []dashboard.Input `json:"items"`
}

type Item struct {
	Index      int     `json:"index"`
	ViewFactor float64 `json:"view_factor"`
	QRadW      float64 `json:"q_rad_w"`
	QConvW     float64 `json:"q_conv_w"`
	NetW       float64 `json:"net_w"`
}

type Result struct {
	Results []Item `json:"results"`
}

// Calculate evaluates every item in order and stops at the first one that
// fails. max <= 0 disables the size limit.
func Calculate(in Input, max int) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, ErrNoItems
	}
	if max > 0 && len(in.Items) > max {
		return Result{}, fmt.Errorf("%w: %d > %d", ErrTooManyItems, len(in.Items), max)
	}
	out := Result{Results: make([]Item, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := dashboard.Calculate(item)
		if err != nil {
			return Result{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, Item{
			Index:      i,
			ViewFactor: res.ViewFactor,
			QRadW:      res.QRadW,
			QConvW:     res.QConvW,
			NetW:       res.QRadW + res.QConvW,
		})
	}
	return out, nil
}
