package catalog

import (
	"testing"

	"github.com/carpick/carpick/internal/lexicon"
)

func TestParse_Basic(t *testing.T) {
	lex := lexicon.Default()

	rec, ok := Parse("Acura_ILX_2013_x7f3a.jpg", lex)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if rec.Make != "Acura" || rec.Model != "ILX" || rec.Year != 2013 {
		t.Errorf("got {%s %s %d}, want {Acura ILX 2013}", rec.Make, rec.Model, rec.Year)
	}
	if rec.ImagePath != "Acura_ILX_2013_x7f3a.jpg" {
		t.Errorf("got path %q, want the relative path", rec.ImagePath)
	}
}

func TestParse_Table(t *testing.T) {
	lex := lexicon.Default()
	tests := []struct {
		file  string
		make  string
		model string
		year  int
	}{
		{"Alfa_Romeo_Giulia_2017_ab12.jpg", "Alfa Romeo", "Giulia", 2017},
		{"landrover_Defender_1995_h9.jpeg", "Land Rover", "Defender", 1995},
		{"chevy_Corvette_C8_2020_k3.png", "Chevrolet", "Corvette C8", 2020},
		{"vw_Golf_GTI_1983_m.jpg", "Volkswagen", "Golf GTI", 1983},
		{"Jeep_grand-cherokee_2015_xx.jpg", "Jeep", "Grand Cherokee", 2015},
		{"zastava_750_1962_q.jpg", "Zastava", "750", 1962},
		{"Ford_Model-T_1950_aa.jpg", "Ford", "Model T", 1950},
		{"Tesla_Roadster_2030_bb.jpg", "Tesla", "Roadster", 2030},
	}
	for _, tt := range tests {
		rec, ok := Parse(tt.file, lex)
		if !ok {
			t.Errorf("Parse(%q): unexpected miss", tt.file)
			continue
		}
		if rec.Make != tt.make || rec.Model != tt.model || rec.Year != tt.year {
			t.Errorf("Parse(%q): got {%s %s %d}, want {%s %s %d}",
				tt.file, rec.Make, rec.Model, rec.Year, tt.make, tt.model, tt.year)
		}
	}
}

func TestParse_FirstInRangeYearWins(t *testing.T) {
	lex := lexicon.Default()

	rec, ok := Parse("Ford_Mustang_1965_2020_zz.jpg", lex)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if rec.Year != 1965 {
		t.Errorf("got year %d, want first in-range year 1965", rec.Year)
	}
}

func TestParse_OutOfRangeYearIsModelToken(t *testing.T) {
	lex := lexicon.Default()

	// 2049 matches the 4-digit pattern but is out of range, so it joins the
	// model and the later 1965 becomes the year.
	rec, ok := Parse("Ford_Mustang_2049_1965_zz.jpg", lex)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if rec.Year != 1965 {
		t.Errorf("got year %d, want 1965", rec.Year)
	}
	if rec.Model != "Mustang 2049" {
		t.Errorf("got model %q, want %q", rec.Model, "Mustang 2049")
	}
}

func TestParse_Misses(t *testing.T) {
	lex := lexicon.Default()
	files := []string{
		"2013_Acura_ILX_x.jpg",     // year first leaves no make
		"Acura_ILX_x7f3a.jpg",      // no year token
		"Acura_2013_x7f3a.jpg",     // no model tokens
		"Saab_900_1949_x.jpg",      // 1949 below range, no other year
		"Tesla_Model3_2031_x.jpg",  // 2031 above range
		"snapshot.jpg",             // single token
	}
	for _, f := range files {
		if _, ok := Parse(f, lex); ok {
			t.Errorf("Parse(%q): expected a miss", f)
		}
	}
}

func TestParse_NestedRelativePath(t *testing.T) {
	lex := lexicon.Default()

	rec, ok := Parse("sedans/Honda_Accord_2018_aa.jpg", lex)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if rec.Make != "Honda" || rec.Model != "Accord" || rec.Year != 2018 {
		t.Errorf("got {%s %s %d}, want {Honda Accord 2018}", rec.Make, rec.Model, rec.Year)
	}
	if rec.ImagePath != "sedans/Honda_Accord_2018_aa.jpg" {
		t.Errorf("got path %q, want nested path preserved", rec.ImagePath)
	}
}

func TestRecordLabel(t *testing.T) {
	rec := Record{Make: "Acura", Model: "ILX", Year: 2013, ImagePath: "a.jpg"}
	if got := rec.Label(); got != "Acura ILX 2013" {
		t.Errorf("got %q, want %q", got, "Acura ILX 2013")
	}
}
