package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		balance int64
		want    string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{123456, "123,456"},
		{1234567, "1,234,567"},
		{-50000, "-50,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBalance(tt.balance))
	}
}

func TestFormatWait(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5*time.Hour + 30*time.Minute, "5 hours, 30 minutes"},
		{6 * time.Hour, "6 hours, 0 minutes"},
		{15 * time.Minute, "0 hours, 15 minutes"},
		// Sub-minute remainders round up instead of reading as no wait
		{30 * time.Second, "0 hours, 1 minutes"},
		{61 * time.Minute, "1 hours, 1 minutes"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatWait(tt.d))
	}
}

func TestFormatDiscordTimestamp(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	assert.Equal(t, "<t:1700000000:R>", FormatDiscordTimestamp(ts, "R"))
}
