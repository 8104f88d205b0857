package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want int
	}{
		{"Int", 42, 42},
		{"Int64", int64(7), 7},
		{"Float64", 3.9, 3},
		{"String", "15", 15},
		{"InvalidString", "abc", 0},
		{"Bytes", []byte("8"), 8},
		{"Nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.val))
		})
	}
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want int64
	}{
		{"Int64", int64(9000000000), 9000000000},
		{"Int", 12, 12},
		{"Float64", 4.7, 4},
		{"String", "123", 123},
		{"Bytes", []byte("456"), 456},
		{"Nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt64(tt.val))
		})
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want string
	}{
		{"String", "hello", "hello"},
		{"Bytes", []byte("raw"), "raw"},
		{"Int", 5, "5"},
		{"Nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.val))
		})
	}
}

func TestToBool(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want bool
	}{
		{"True", true, true},
		{"IntOne", 1, true},
		{"IntZero", 0, false},
		{"Int64One", int64(1), true},
		{"StringOne", "1", true},
		{"StringTrue", "true", true},
		{"StringTrueUpper", "TRUE", true},
		{"StringFalse", "false", false},
		{"BytesOne", []byte("1"), true},
		{"Nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToBool(tt.val))
		})
	}
}

func TestToTime(t *testing.T) {
	tests := []struct {
		name   string
		val    any
		wantOK bool
		want   time.Time
	}{
		{
			name:   "LightroomLocal",
			val:    "2023-07-14T18:30:05",
			wantOK: true,
			want:   time.Date(2023, 7, 14, 18, 30, 5, 0, time.UTC),
		},
		{
			name:   "LightroomFractional",
			val:    "2023-07-14T18:30:05.123",
			wantOK: true,
			want:   time.Date(2023, 7, 14, 18, 30, 5, 123000000, time.UTC),
		},
		{
			name:   "RFC3339",
			val:    "2023-07-14T18:30:05Z",
			wantOK: true,
			want:   time.Date(2023, 7, 14, 18, 30, 5, 0, time.UTC),
		},
		{
			name:   "DateOnly",
			val:    "2023-07-14",
			wantOK: true,
			want:   time.Date(2023, 7, 14, 0, 0, 0, 0, time.UTC),
		},
		{"Empty", "", false, time.Time{}},
		{"Garbage", "not a time", false, time.Time{}},
		{"Nil", nil, false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToTime(tt.val)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			}
		})
	}
}
