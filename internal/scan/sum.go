package scan

import (
	"context"

	"schematic/internal/grid"
)

// PartNumberSum returns the sum of all numbers adjacent to a symbol.
func PartNumberSum(g *grid.Grid) (uint64, error) {
	res, err := Run(context.Background(), g, Options{Jobs: 1, Mode: ModeParts}, nil)
	if err != nil {
		return 0, err
	}
	return res.PartSum, nil
}

// GearRatioSum returns the sum of the ratios of all gears with exactly two
// adjacent numbers.
func GearRatioSum(g *grid.Grid) (uint64, error) {
	res, err := Run(context.Background(), g, Options{Jobs: 1, Mode: ModeGears}, nil)
	if err != nil {
		return 0, err
	}
	return res.GearSum, nil
}
