package host

import (
	"github.com/npillmayer/keyset/core"
	"github.com/npillmayer/keyset/core/color"
	"github.com/npillmayer/keyset/core/layout"
)

// Legend is the host object of a legend. Text is legend markup: lines are
// separated by newlines or <br>. A nil Color selects the default legend
// color.
type Legend struct {
	Text  string `host:"text"`
	Size  int    `host:"size"`
	Color any    `host:"color"`
}

// ToLegend converts a host value to a legend. Accepted are Legend objects
// and mappings with keys "text", "size" and "color". nil converts to an
// empty legend slot, i.e. a nil legend.
func ToLegend(v any) (*layout.Legend, error) {
	var hl Legend
	switch x := v.(type) {
	case nil:
		return nil, nil
	case *layout.Legend:
		return x, nil
	case Legend:
		hl = x
	case *Legend:
		if x == nil {
			return nil, nil
		}
		hl = *x
	default:
		if !isMapping(v) {
			return nil, typeMismatch("'%s' can not be converted to Legend", typeName(v))
		}
		hl.Size = layout.DefaultLegendSize
		if err := decodeMapping(v, &hl); err != nil {
			return nil, core.WrapError(err, core.ETYPE, "'%s' can not be converted to Legend", typeName(v))
		}
	}
	c := color.DefaultLegend
	if hl.Color != nil {
		var err error
		if c, err = ToColor(hl.Color); err != nil {
			return nil, err
		}
	}
	if hl.Size < 0 {
		return nil, valueError("invalid legend size %d", hl.Size)
	}
	return layout.NewLegend(hl.Text, hl.Size, c), nil
}

// FromLegend returns the host object of a legend. The text is serialized
// as markup, the color as an (r, g, b) triple.
func FromLegend(l *layout.Legend) *Legend {
	if l == nil {
		return nil
	}
	return &Legend{Text: l.Text.Markup(), Size: l.Size, Color: FromColor(l.Color)}
}

// Key is the host object of a key. Shape, Color and the items of Legends
// are host values for ToKeyShape, ToColor and ToLegend. A nil Shape is a
// 1u normal key, a nil Color the default key color.
type Key struct {
	X       float64 `host:"x"`
	Y       float64 `host:"y"`
	Shape   any     `host:"shape"`
	Color   any     `host:"color"`
	Legends []any   `host:"legends"`
}

// ToKey converts a host value to a key. Accepted are Key objects and
// mappings with keys "x", "y", "shape", "color" and "legends".
//
// The legend list is truncated to layout.LegendCount entries before the
// entries are converted, and padded with empty slots. A legend entry which
// fails to convert fails the key.
func ToKey(v any) (layout.Key, error) {
	var hk Key
	switch x := v.(type) {
	case layout.Key:
		return x, nil
	case Key:
		hk = x
	case *Key:
		if x == nil {
			return layout.Key{}, typeMismatch("'%s' can not be converted to Key", typeName(v))
		}
		hk = *x
	default:
		if !isMapping(v) {
			return layout.Key{}, typeMismatch("'%s' can not be converted to Key", typeName(v))
		}
		if err := decodeMapping(v, &hk); err != nil {
			return layout.Key{}, core.WrapError(err, core.ETYPE, "'%s' can not be converted to Key", typeName(v))
		}
	}
	key := layout.NewKey()
	key.X, key.Y = hk.X, hk.Y
	var err error
	if hk.Shape != nil {
		if key.Shape, err = ToKeyShape(hk.Shape); err != nil {
			return layout.Key{}, err
		}
	}
	if hk.Color != nil {
		if key.Color, err = ToColor(hk.Color); err != nil {
			return layout.Key{}, err
		}
	}
	legends := hk.Legends
	if len(legends) > layout.LegendCount {
		tracer().Debugf("dropping %d legends beyond slot %d", len(legends)-layout.LegendCount, layout.LegendCount)
		legends = legends[:layout.LegendCount]
	}
	for i, l := range legends {
		if key.Legends[i], err = ToLegend(l); err != nil {
			return layout.Key{}, err
		}
	}
	return key, nil
}

// ToKeys converts a host sequence of keys, keeping their order.
func ToKeys(v any) ([]layout.Key, error) {
	if keys, ok := v.([]layout.Key); ok {
		return keys, nil
	}
	items, ok := sequence(v)
	if !ok {
		return nil, typeMismatch("'%s' can not be converted to a list of keys", typeName(v))
	}
	keys := make([]layout.Key, len(items))
	for i, item := range items {
		k, err := ToKey(item)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	return keys, nil
}

// FromKey returns the host object of a key. Legends always has
// layout.LegendCount entries, empty slots are nil.
func FromKey(k layout.Key) Key {
	hk := Key{
		X:       k.X,
		Y:       k.Y,
		Shape:   FromKeyShape(k.Shape),
		Color:   FromColor(k.Color),
		Legends: make([]any, layout.LegendCount),
	}
	for i, l := range k.Legends {
		if l != nil {
			hk.Legends[i] = FromLegend(l)
		}
	}
	return hk
}
