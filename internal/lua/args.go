package lua

import (
	"fmt"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-gkscairo/internal/gks"
)

// allArgs combines Args() and Etc() to get every argument including varargs.
func allArgs(c *rt.GoCont) []rt.Value {
	return append(c.Args(), c.Etc()...)
}

func floatArg(args []rt.Value, idx int) (float64, error) {
	if idx >= len(args) {
		return 0, fmt.Errorf("argument %d out of range (have %d)", idx+1, len(args))
	}
	if i, ok := args[idx].TryInt(); ok {
		return float64(i), nil
	}
	if f, ok := args[idx].TryFloat(); ok {
		return f, nil
	}
	return 0, fmt.Errorf("argument %d is not a number", idx+1)
}

func intArg(args []rt.Value, idx int) (int, error) {
	if idx >= len(args) {
		return 0, fmt.Errorf("argument %d out of range (have %d)", idx+1, len(args))
	}
	if i, ok := args[idx].TryInt(); ok {
		return int(i), nil
	}
	if f, ok := args[idx].TryFloat(); ok {
		return int(f), nil
	}
	return 0, fmt.Errorf("argument %d is not an integer", idx+1)
}

func stringArg(args []rt.Value, idx int) (string, error) {
	if idx >= len(args) {
		return "", fmt.Errorf("argument %d out of range (have %d)", idx+1, len(args))
	}
	if s, ok := args[idx].TryString(); ok {
		return s, nil
	}
	return "", fmt.Errorf("argument %d is not a string", idx+1)
}

// optionalInt returns def when the argument is absent or nil.
func optionalInt(args []rt.Value, idx, def int) (int, error) {
	if idx >= len(args) || args[idx].IsNil() {
		return def, nil
	}
	return intArg(args, idx)
}

func optionalString(args []rt.Value, idx int, def string) (string, error) {
	if idx >= len(args) || args[idx].IsNil() {
		return def, nil
	}
	return stringArg(args, idx)
}

func asfArg(args []rt.Value, idx int) (gks.ASF, error) {
	if idx >= len(args) || args[idx].IsNil() {
		return gks.Individual, nil
	}
	if s, ok := args[idx].TryString(); ok {
		if a, ok := gks.ParseASF(s); ok {
			return a, nil
		}
		return gks.Individual, fmt.Errorf("%w: %q", ErrInvalidFlag, s)
	}
	n, err := intArg(args, idx)
	if err != nil {
		return gks.Individual, err
	}
	switch gks.ASF(n) {
	case gks.Bundled, gks.Individual:
		return gks.ASF(n), nil
	}
	return gks.Individual, fmt.Errorf("%w: %d", ErrInvalidFlag, n)
}

func tableNumber(t *rt.Table, i int64) (float64, bool) {
	v := t.Get(rt.IntValue(i))
	if n, ok := v.TryInt(); ok {
		return float64(n), true
	}
	return v.TryFloat()
}

// pointsArg reads a point list given either as a table of {x, y} pairs
// or as a flat table {x1, y1, x2, y2, ...}.
func pointsArg(args []rt.Value, idx int) ([]gks.Point, error) {
	if idx >= len(args) {
		return nil, fmt.Errorf("%w: missing argument %d", ErrInvalidPoints, idx+1)
	}
	t, ok := args[idx].TryTable()
	if !ok {
		return nil, fmt.Errorf("%w: argument %d is not a table", ErrInvalidPoints, idx+1)
	}

	var pts []gks.Point
	if _, nested := t.Get(rt.IntValue(1)).TryTable(); nested {
		for i := int64(1); ; i++ {
			pair, ok := t.Get(rt.IntValue(i)).TryTable()
			if !ok {
				break
			}
			x, okx := tableNumber(pair, 1)
			y, oky := tableNumber(pair, 2)
			if !okx || !oky {
				return nil, fmt.Errorf("%w: point %d needs two numbers", ErrInvalidPoints, i)
			}
			pts = append(pts, gks.Point{X: x, Y: y})
		}
		return pts, nil
	}

	for i := int64(1); ; i += 2 {
		x, okx := tableNumber(t, i)
		if !okx {
			break
		}
		y, oky := tableNumber(t, i+1)
		if !oky {
			return nil, fmt.Errorf("%w: odd number of coordinates", ErrInvalidPoints)
		}
		pts = append(pts, gks.Point{X: x, Y: y})
	}
	return pts, nil
}
