package money

import (
	"errors"
	"testing"

	"github.com/WeBoost/aurora-backend/internal/errs"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		name         string
		gross        int64
		rate         float64
		wantPlatform int64
		wantBusiness int64
	}{
		{name: "five_percent", gross: 10000, rate: 5, wantPlatform: 500, wantBusiness: 9500},
		{name: "zero_rate", gross: 10000, rate: 0, wantPlatform: 0, wantBusiness: 10000},
		{name: "full_rate", gross: 10000, rate: 100, wantPlatform: 10000, wantBusiness: 0},
		{name: "zero_gross", gross: 0, rate: 12.5, wantPlatform: 0, wantBusiness: 0},
		{name: "floors_platform_share", gross: 999, rate: 10, wantPlatform: 99, wantBusiness: 900},
		{name: "fractional_rate", gross: 10000, rate: 2.5, wantPlatform: 250, wantBusiness: 9750},
		{name: "one_unit", gross: 1, rate: 50, wantPlatform: 0, wantBusiness: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Split(tc.gross, tc.rate)
			if err != nil {
				t.Fatalf("Split(%d, %v): %v", tc.gross, tc.rate, err)
			}
			if got.PlatformAmount != tc.wantPlatform {
				t.Fatalf("platform: want=%d got=%d", tc.wantPlatform, got.PlatformAmount)
			}
			if got.BusinessAmount != tc.wantBusiness {
				t.Fatalf("business: want=%d got=%d", tc.wantBusiness, got.BusinessAmount)
			}
		})
	}
}

func TestSplitSumInvariant(t *testing.T) {
	rates := []float64{0, 0.1, 1, 2.5, 5, 7.77, 12.5, 33.33, 50, 66.67, 99.9, 100}
	for gross := int64(0); gross <= 5000; gross += 7 {
		for _, rate := range rates {
			got, err := Split(gross, rate)
			if err != nil {
				t.Fatalf("Split(%d, %v): %v", gross, rate, err)
			}
			if got.PlatformAmount+got.BusinessAmount != gross {
				t.Fatalf("sum invariant broken for gross=%d rate=%v: platform=%d business=%d",
					gross, rate, got.PlatformAmount, got.BusinessAmount)
			}
			if got.PlatformAmount < 0 || got.BusinessAmount < 0 {
				t.Fatalf("negative share for gross=%d rate=%v: %+v", gross, rate, got)
			}
		}
	}
}

func TestSplitRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		gross int64
		rate  float64
	}{
		{name: "negative_gross", gross: -1, rate: 10},
		{name: "negative_rate", gross: 100, rate: -0.01},
		{name: "rate_above_hundred", gross: 100, rate: 100.01},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Split(tc.gross, tc.rate)
			if err == nil {
				t.Fatalf("Split(%d, %v): expected error", tc.gross, tc.rate)
			}
			if !errors.Is(err, errs.ErrInvalidArgument) {
				t.Fatalf("Split(%d, %v): want ErrInvalidArgument, got %v", tc.gross, tc.rate, err)
			}
		})
	}
}
