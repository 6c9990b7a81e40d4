// Copyright (c) 2026 Mangabay. All rights reserved.

package natsort

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLess(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "numeric run beats lexicographic", a: "page2.png", b: "page10.png", want: true},
		{name: "reverse of numeric run", a: "page10.png", b: "page2.png", want: false},
		{name: "plain lexicographic", a: "apple", b: "banana", want: true},
		{name: "equal strings", a: "page1.png", b: "page1.png", want: false},
		{name: "prefix is smaller", a: "page", b: "page1", want: true},
		{name: "leading zeros equal value", a: "1", b: "01", want: true},
		{name: "leading zeros different value", a: "002", b: "10", want: true},
		{name: "mixed runs", a: "ch1p10", b: "ch1p9", want: false},
		{name: "digits before letters", a: "1.png", b: "a.png", want: true},
		{name: "long numbers do not overflow", a: "99999999999999999998", b: "99999999999999999999", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Less(tt.a, tt.b))
		})
	}
}

func TestSort(t *testing.T) {
	files := []string{"page10.png", "page2.png", "page1.png"}
	Sort(files)
	assert.Equal(t, []string{"page1.png", "page2.png", "page10.png"}, files)
}

func TestSort_ArchiveListing(t *testing.T) {
	files := []string{
		"scan_100.jpg",
		"scan_2.jpg",
		"cover.jpg",
		"scan_11.jpg",
		"scan_1.jpg",
	}
	Sort(files)
	assert.Equal(t, []string{
		"cover.jpg",
		"scan_1.jpg",
		"scan_2.jpg",
		"scan_11.jpg",
		"scan_100.jpg",
	}, files)
}
