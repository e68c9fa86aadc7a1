package pipeline

import (
	"testing"

	werrors "github.com/matzehuels/wordladder/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"json", false},
		{"graph", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !werrors.Is(err, werrors.ErrCodeInvalidInput) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_INPUT", tt.format, werrors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidateForLoad(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Missing word file should fail")
	}

	opts = Options{WordFile: "words.txt"}
	if err := opts.ValidateForLoad(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if opts.Workers != DefaultWorkers() {
		t.Errorf("Workers should default to %d, got %d", DefaultWorkers(), opts.Workers)
	}
	if opts.Logger == nil {
		t.Error("Logger should be defaulted")
	}
}

func TestOptionsValidateForSearch(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"Valid", Options{From: "fled", To: "tint"}, false},
		{"MissingFrom", Options{To: "tint"}, true},
		{"MissingTo", Options{From: "fled"}, true},
		{"Whitespace", Options{From: "fl ed", To: "tint"}, true},
		{"NegativeDelay", Options{From: "fled", To: "tint", EdgeDelay: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForSearch()
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsRenderDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should default to [svg], got %v", opts.Formats)
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{WordFile: "w.txt", From: "ab", To: "cd"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	opts.Formats = []string{"bogus"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should be a no-op, got %v", err)
	}
}

func TestEngineAndGraphOptions(t *testing.T) {
	opts := Options{Workers: 3, StepDelay: 5, EdgeDelay: 7}
	opts.setLogger()

	g := opts.GraphOptions()
	if g.Workers != 3 || g.Logger != opts.Logger {
		t.Errorf("GraphOptions = %+v", g)
	}
	e := opts.EngineOptions()
	if e.StepDelay != 5 || e.EdgeDelay != 7 || e.Logger != opts.Logger {
		t.Errorf("EngineOptions = %+v", e)
	}
}
