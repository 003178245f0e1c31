// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package speech

import (
	"strconv"
	"strings"
)

var ones = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tens = []string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}

var scales = []struct {
	value int64
	name  string
}{
	{1_000_000_000_000, "trillion"},
	{1_000_000_000, "billion"},
	{1_000_000, "million"},
	{1_000, "thousand"},
}

// IntToWords spells n in British-style English: 115 is "one hundred and
// fifteen", 2500 is "two thousand, five hundred". Magnitudes of a
// quadrillion and above stay as digits.
func IntToWords(n int64) string {
	if n < 0 {
		return "minus " + IntToWords(-n)
	}
	if n < 20 {
		return ones[n]
	}
	if n < 100 {
		w := tens[n/10]
		if n%10 != 0 {
			w += "-" + ones[n%10]
		}
		return w
	}
	if n < 1000 {
		w := ones[n/100] + " hundred"
		if n%100 != 0 {
			w += " and " + IntToWords(n%100)
		}
		return w
	}
	for _, s := range scales {
		if n >= s.value {
			if n/s.value >= 1000 {
				break
			}
			w := IntToWords(n/s.value) + " " + s.name
			if n%s.value != 0 {
				w += ", " + IntToWords(n%s.value)
			}
			return w
		}
	}
	return strconv.FormatInt(n, 10)
}

// YearToWords speaks a year the way it is read aloud: 1984 is "nineteen
// eighty-four", 1905 is "nineteen oh five", 2007 is "two thousand seven",
// 2014 is "twenty fourteen".
func YearToWords(n int64) string {
	switch {
	case n >= 1000 && n <= 1999:
		hi, lo := n/100, n%100
		switch {
		case lo == 0:
			return IntToWords(hi) + " hundred"
		case lo < 10:
			return IntToWords(hi) + " oh " + IntToWords(lo)
		}
		return IntToWords(hi) + " " + IntToWords(lo)
	case n >= 2000 && n <= 2009:
		if n == 2000 {
			return "two thousand"
		}
		return "two thousand " + IntToWords(n-2000)
	case n >= 2010 && n <= 2099:
		return "twenty " + IntToWords(n-2000)
	}
	return IntToWords(n)
}

// NumberToWords spells a numeric string that may carry thousands commas
// and a decimal part: "2.05" is "two point zero five". A string without
// digits is returned unchanged.
func NumberToWords(s string) string {
	clean := strings.ReplaceAll(s, ",", "")
	intPart, decPart, hasDec := strings.Cut(clean, ".")

	left := "zero"
	if intPart != "" {
		n, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil {
			return s
		}
		left = IntToWords(n)
	}
	if !hasDec {
		return left
	}
	var digits []string
	for _, r := range decPart {
		if r >= '0' && r <= '9' {
			digits = append(digits, ones[r-'0'])
		}
	}
	if len(digits) == 0 {
		return left
	}
	return left + " point " + strings.Join(digits, " ")
}

var irregularOrdinals = map[string]string{
	"one":    "first",
	"two":    "second",
	"three":  "third",
	"five":   "fifth",
	"eight":  "eighth",
	"nine":   "ninth",
	"twelve": "twelfth",
}

// OrdinalToWords spells the ordinal of n: 1 is "first", 23 is
// "twenty-third", 40 is "fortieth", 100 is "one hundredth".
func OrdinalToWords(n int64) string {
	w := IntToWords(n)
	cut := strings.LastIndexAny(w, " -") + 1
	head, last := w[:cut], w[cut:]
	if ord, ok := irregularOrdinals[last]; ok {
		return head + ord
	}
	if strings.HasSuffix(last, "y") {
		return head + strings.TrimSuffix(last, "y") + "ieth"
	}
	if _, err := strconv.Atoi(last); err == nil {
		return w + "th"
	}
	return head + last + "th"
}
