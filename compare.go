package jsondiff

import (
	"log/slog"
)

// comparator walks two value trees in step. the path of the node under
// comparison is passed down each call rather than kept as shared state
type comparator struct {
	cfg   *Config
	stats *Stats
	log   *slog.Logger
}

// values dispatches on the kinds of source and target
func (c *comparator) values(source, target interface{}, path Path) Difference {
	sk, tk := kindOf(source), kindOf(target)

	switch {
	case sk == KindNull && tk == KindNull:
		return nil
	case sk == KindBool && tk == KindBool:
		if source.(bool) == target.(bool) {
			return nil
		}
		return c.scalar(ScalarBool, source, target)
	case sk == KindNumber && tk == KindNumber:
		return c.numbers(source, target)
	case sk == KindString && tk == KindString:
		return c.strings(source.(string), target.(string))
	case sk == KindArray && tk == KindArray:
		return c.arrays(source.([]interface{}), target.([]interface{}), path)
	case sk == KindObject && tk == KindObject:
		return c.objects(asObject(source), asObject(target), path)
	case c.cfg.EquateEmptyArrays && sk == KindArray && tk == KindNull && len(source.([]interface{})) == 0:
		return nil
	case c.cfg.EquateEmptyArrays && sk == KindNull && tk == KindArray && len(target.([]interface{})) == 0:
		return nil
	}

	if c.stats != nil {
		c.stats.TypeChanges++
	}
	return &TypeDifference{
		SourceType:  sk,
		SourceValue: source,
		TargetType:  tk,
		TargetValue: target,
	}
}

// arrays compares elements position by position, classifying the result by
// the relative length of source and target
func (c *comparator) arrays(source, target []interface{}, path Path) Difference {
	pairs := c.arrayPairs(source, target, path)

	switch s, t := len(source), len(target); {
	case s > t:
		if c.stats != nil {
			c.stats.Extras += s - t
		}
		return &ArrayDifference{
			Kind:           ArrayLonger,
			DifferentPairs: pairs,
			ExtraLength:    s - t,
		}
	case s < t:
		missing := make([]interface{}, t-s)
		copy(missing, target[s:])
		if c.stats != nil {
			c.stats.Missing += t - s
		}
		return &ArrayDifference{
			Kind:            ArrayShorter,
			DifferentPairs:  pairs,
			MissingElements: missing,
		}
	case pairs != nil:
		return &ArrayDifference{
			Kind:           ArrayPairsOnly,
			DifferentPairs: pairs,
		}
	}
	return nil
}

// arrayPairs compares the overlapping range of two arrays, returning nil if
// no pair differs
func (c *comparator) arrayPairs(source, target []interface{}, path Path) []PairDifference {
	var pairs []PairDifference
	for i := 0; i < len(source) && i < len(target); i++ {
		elPath := path.Append(Index(i))
		if c.ignore(elPath, true) {
			continue
		}
		if d := c.values(source[i], target[i], elPath); d != nil {
			pairs = append(pairs, PairDifference{Index: i, Diff: d})
		}
	}
	return pairs
}

// objects merges the key sets of two objects. source members are visited in
// source order and checked against ignore rules, whatever remains of target
// afterward is reported missing in target order
func (c *comparator) objects(source, target Object, path Path) Difference {
	remaining := make(map[string]interface{}, len(target))
	for _, m := range target {
		remaining[m.Key] = m.Value
	}

	var entries []EntryDifference
	for _, m := range source {
		keyPath := path.Append(Key(m.Key))
		tv, ok := remaining[m.Key]

		if c.ignore(keyPath, ok) {
			delete(remaining, m.Key)
			continue
		}

		if !ok {
			if c.stats != nil {
				c.stats.Extras++
			}
			entries = append(entries, EntryDifference{Key: m.Key, Kind: EntryExtra, Value: m.Value})
			continue
		}

		delete(remaining, m.Key)
		if d := c.values(m.Value, tv, keyPath); d != nil {
			entries = append(entries, EntryDifference{Key: m.Key, Kind: EntryValue, ValueDiff: d})
		}
	}

	for _, m := range target {
		v, ok := remaining[m.Key]
		if !ok {
			continue
		}
		delete(remaining, m.Key)
		if c.stats != nil {
			c.stats.Missing++
		}
		entries = append(entries, EntryDifference{Key: m.Key, Kind: EntryMissing, Value: v})
	}

	if len(entries) == 0 {
		return nil
	}
	return &ObjectDifference{DifferentEntries: entries}
}

// ignore reports whether the subtree at path is skipped
func (c *comparator) ignore(path Path, exists bool) bool {
	if !c.cfg.ignores(path, exists) {
		return false
	}
	if c.stats != nil {
		c.stats.Ignored++
	}
	c.log.Debug("ignoring path", slog.String("path", path.String()), slog.Bool("exists", exists))
	return true
}
