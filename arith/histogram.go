package arith

import "fmt"

// EncodeSymbols encodes symbols against explicit CDF tables.
//
// cdfs holds either one table shared by every position or one table per
// symbol. Each table is non-decreasing, starts at 0 and closes at 65535;
// symbol s occupies [cdf[s], cdf[s+1]) and must have a non-empty range.
// Arguments are checked before anything is encoded. The first
// ErrCapacityExceeded stops the call and is returned unchanged.
func (e *Encoder) EncodeSymbols(symbols []int, cdfs [][]uint16) error {
	if err := e.ready(); err != nil {
		return err
	}
	if !sharedOrPerPosition(len(cdfs), len(symbols)) {
		return fmt.Errorf("%w: %d tables for %d symbols", ErrInvalidArgument, len(cdfs), len(symbols))
	}
	for k, s := range symbols {
		cdf := pick(cdfs, k)
		if s < 0 || s > len(cdf)-2 {
			return fmt.Errorf("%w: symbol %d outside table of %d entries", ErrInvalidArgument, s, len(cdf))
		}
		if cdf[s] >= cdf[s+1] {
			return fmt.Errorf("%w: symbol %d has an empty range", ErrInvalidArgument, s)
		}
	}

	for k, s := range symbols {
		cdf := pick(cdfs, k)
		if err := e.encodeInterval(uint32(cdf[s]), uint32(cdf[s+1])); err != nil {
			return err
		}
	}
	traceEncode("hist", e)
	return nil
}

// DecodeSymbolsBisect decodes len(dst) symbols by bisection and returns the
// consumed stream length in bytes.
//
// sizes holds the power-of-two search size for each table, shared or per
// position like cdfs. A table of search size n has at most n-1 entries;
// entries beyond its end read as 65535. The search starts at cdf[n/2-1] and
// halves its step until it settles on the symbol j with
// scale(cdf[j]) < streamval <= scale(cdf[j+1]).
func (d *Decoder) DecodeSymbolsBisect(dst []int, cdfs [][]uint16, sizes []int) (int, error) {
	if !sharedOrPerPosition(len(cdfs), len(dst)) || !sharedOrPerPosition(len(sizes), len(dst)) {
		return 0, fmt.Errorf("%w: %d tables and %d sizes for %d symbols", ErrInvalidArgument, len(cdfs), len(sizes), len(dst))
	}
	for k := range dst {
		cdf, n := pick(cdfs, k), pick(sizes, k)
		if n < 4 || n&(n-1) != 0 || len(cdf) < 2 || len(cdf) > n-1 {
			return 0, fmt.Errorf("%w: table of %d entries with search size %d", ErrInvalidArgument, len(cdf), n)
		}
	}
	if err := d.begin(); err != nil {
		return 0, err
	}

	for k := range dst {
		cdf, n := pick(cdfs, k), pick(sizes, k)
		width := d.width
		wLower, wUpper := uint32(0), width

		step := n / 2
		pos := step - 1
		var wTmp uint32
		for {
			wTmp = scale(width, bisectEntry(cdf, pos))
			step /= 2
			if step == 0 {
				break
			}
			if d.streamval > wTmp {
				wLower = wTmp
				pos += step
			} else {
				wUpper = wTmp
				pos -= step
			}
		}

		sym := pos
		if d.streamval > wTmp {
			wLower = wTmp
		} else {
			wUpper = wTmp
			sym--
		}
		if sym < 0 || sym > len(cdf)-2 {
			return 0, ErrRange
		}
		dst[k] = sym

		if err := d.decodeInterval(wLower, wUpper); err != nil {
			return 0, err
		}
	}
	traceDecode("bisect", d)
	return d.Consumed(), nil
}

// bisectEntry reads a CDF entry, treating positions past the end as the
// closing value.
func bisectEntry(cdf []uint16, pos int) uint32 {
	if pos >= len(cdf) {
		return cdfTop
	}
	return uint32(cdf[pos])
}

// DecodeSymbolsOneStep decodes len(dst) symbols by walking each table from
// a starting index and returns the consumed stream length in bytes.
//
// hints holds the starting index for each table, shared or per position
// like cdfs. The walk moves up while streamval exceeds the scaled entry and
// down otherwise, one entry at a time. Walking up past the closing 65535
// entry or down past the first entry returns ErrRange. The cost is
// proportional to the distance between the hint and the decoded symbol.
func (d *Decoder) DecodeSymbolsOneStep(dst []int, cdfs [][]uint16, hints []int) (int, error) {
	if !sharedOrPerPosition(len(cdfs), len(dst)) || !sharedOrPerPosition(len(hints), len(dst)) {
		return 0, fmt.Errorf("%w: %d tables and %d hints for %d symbols", ErrInvalidArgument, len(cdfs), len(hints), len(dst))
	}
	for k := range dst {
		cdf, h := pick(cdfs, k), pick(hints, k)
		if len(cdf) < 2 || h < 0 || h >= len(cdf) {
			return 0, fmt.Errorf("%w: hint %d for table of %d entries", ErrInvalidArgument, h, len(cdf))
		}
	}
	if err := d.begin(); err != nil {
		return 0, err
	}

	for k := range dst {
		cdf := pick(cdfs, k)
		pos := pick(hints, k)
		width := d.width

		var wLower, wUpper uint32
		wTmp := scale(width, uint32(cdf[pos]))
		if d.streamval > wTmp {
			for {
				wLower = wTmp
				if cdf[pos] == cdfTop || pos+1 >= len(cdf) {
					return 0, ErrRange
				}
				pos++
				wTmp = scale(width, uint32(cdf[pos]))
				if d.streamval <= wTmp {
					break
				}
			}
			wUpper = wTmp
			dst[k] = pos - 1
		} else {
			for {
				wUpper = wTmp
				pos--
				if pos < 0 {
					return 0, ErrRange
				}
				wTmp = scale(width, uint32(cdf[pos]))
				if d.streamval > wTmp {
					break
				}
			}
			wLower = wTmp
			dst[k] = pos
		}

		if err := d.decodeInterval(wLower, wUpper); err != nil {
			return 0, err
		}
	}
	traceDecode("onestep", d)
	return d.Consumed(), nil
}
