package portfolio

import "testing"

func TestParseIndustry(t *testing.T) {
	tests := []struct {
		raw  string
		want Industry
	}{
		{"technology", IndustryTechnology},
		{"real_estate", IndustryRealEstate},
		{"Real Estate", IndustryRealEstate},
		{"  REAL ESTATE  ", IndustryRealEstate},
		{"TECHNOLOGY", IndustryTechnology},
		{"crypto", Industry("crypto")},
		{"", Industry("")},
	}
	for _, tt := range tests {
		if got := ParseIndustry(tt.raw); got != tt.want {
			t.Errorf("ParseIndustry(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestIndustryDisplayName(t *testing.T) {
	if got := IndustryTechnology.DisplayName(); got != "Technology" {
		t.Errorf("DisplayName() = %q", got)
	}
	if got := IndustryRealEstate.DisplayName(); got != "Real Estate" {
		t.Errorf("DisplayName() = %q", got)
	}
}
