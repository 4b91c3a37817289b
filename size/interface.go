/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package size parses and formats human-readable byte sizes ("64Ki", "100MB",
// "1.5GB") for configuration values such as a dispatcher's read/write buffer
// capacity.
package size

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Size is a count of bytes, with constants and parsing in binary (1024-based)
// units.
type Size uint64

const (
	SizeNul  Size = 0
	SizeUnit Size = 1
	SizeKilo Size = SizeUnit << 10
	SizeMega Size = SizeKilo << 10
	SizeGiga Size = SizeMega << 10
	SizeTera Size = SizeGiga << 10
	SizePeta Size = SizeTera << 10
	SizeExa  Size = SizePeta << 10
)

const (
	FormatRound0 = "%.0f"
	FormatRound1 = "%.1f"
	FormatRound2 = "%.2f"
	FormatRound3 = "%.3f"
)

var unitSuffixes = []struct {
	suffix string
	size   Size
}{
	{"EB", SizeExa}, {"E", SizeExa},
	{"PB", SizePeta}, {"P", SizePeta},
	{"TB", SizeTera}, {"T", SizeTera},
	{"GB", SizeGiga}, {"G", SizeGiga},
	{"MB", SizeMega}, {"M", SizeMega},
	{"KB", SizeKilo}, {"K", SizeKilo},
	{"B", SizeUnit},
}

var defaultUnit = SizeUnit

// SetDefaultUnit changes the unit assumed for a bare numeric string with no
// suffix (e.g. "1024"). The zero value of Size is never a valid default unit;
// callers passing SizeNul are ignored.
func SetDefaultUnit(u Size) {
	if u == SizeNul {
		return
	}
	defaultUnit = u
}

// Parse converts a human size string ("1KB", "1.5 GB", "42") into a Size.
// Matching is case-insensitive and tolerates surrounding whitespace and a
// single space between the number and the unit.
func Parse(s string) (Size, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if t == "" {
		return SizeNul, fmt.Errorf("size: empty value")
	}

	for _, u := range unitSuffixes {
		if strings.HasSuffix(t, u.suffix) {
			num := strings.TrimSpace(strings.TrimSuffix(t, u.suffix))
			if num == "" {
				continue
			}
			return parseFloat(num, u.size)
		}
	}

	return parseFloat(t, defaultUnit)
}

func parseFloat(num string, unit Size) (Size, error) {
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return SizeNul, fmt.Errorf("size: invalid numeric value %q: %w", num, err)
	}
	if f < 0 {
		return SizeNul, fmt.Errorf("size: negative value %q", num)
	}

	v := f * float64(unit)
	if v > math.MaxUint64 {
		return Size(math.MaxUint64), nil
	}
	return Size(v), nil
}

// String renders the size in the largest unit that keeps the mantissa >= 1,
// using FormatRound2.
func (s Size) String() string {
	return s.Format(FormatRound2)
}

// Format renders the size, scaled to the largest unit keeping the mantissa
// >= 1, using layout as the fmt verb applied to the float64 mantissa.
func (s Size) Format(layout string) string {
	v := float64(s)

	units := []struct {
		size  Size
		label string
	}{
		{SizeExa, "EB"}, {SizePeta, "PB"}, {SizeTera, "TB"},
		{SizeGiga, "GB"}, {SizeMega, "MB"}, {SizeKilo, "KB"},
	}

	for _, u := range units {
		if s >= u.size {
			return fmt.Sprintf(layout, v/float64(u.size)) + u.label
		}
	}

	return fmt.Sprintf(layout, v) + "B"
}

// Uint64 returns the size as a uint64.
func (s Size) Uint64() uint64 {
	return uint64(s)
}

// Uint32 returns the size as a uint32, clamped to math.MaxUint32 on overflow.
func (s Size) Uint32() uint32 {
	if s > Size(math.MaxUint32) {
		return math.MaxUint32
	}
	return uint32(s)
}

// Int64 returns the size as an int64, clamped to math.MaxInt64 on overflow.
func (s Size) Int64() int64 {
	if s > Size(math.MaxInt64) {
		return math.MaxInt64
	}
	return int64(s)
}
