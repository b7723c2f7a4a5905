package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewCursorRoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	cursor := EncodeReviewCursor(createdAt, 12345)
	require.NotEmpty(t, cursor)

	gotTime, gotID, err := DecodeReviewCursor(cursor)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, uint64(12345), gotID)
}

func TestDecodeReviewCursor_Empty(t *testing.T) {
	gotTime, gotID, err := DecodeReviewCursor("")
	require.NoError(t, err)
	assert.True(t, gotTime.IsZero())
	assert.Zero(t, gotID)
}

func TestDecodeReviewCursor_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
	}{
		{"非Base64", "!!!not-base64!!!"},
		{"非JSON", "bm90LWpzb24="},
		{"缺少ID", "eyJjcmVhdGVkX2F0IjoiMjAyNS0wNi0wMVQxMjozMDowMFoifQ=="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeReviewCursor(tt.cursor)
			assert.Error(t, err)
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"空输入", nil, nil},
		{"去空白", []string{" fun ", "fair"}, []string{"fun", "fair"}},
		{"去重保序", []string{"fun", "fair", "fun"}, []string{"fun", "fair"}},
		{"全空白丢弃", []string{"  ", ""}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.in))
		})
	}
}
