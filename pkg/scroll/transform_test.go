package scroll

import (
	"math"
	"testing"
)

const eps = 1e-9

func testTransform() Transform {
	return Transform{
		Phases:       DefaultPhases,
		MaxScroll:    -2000,
		BookendScale: 2.4,
	}
}

func TestPhasesValidate(t *testing.T) {
	tests := []struct {
		name    string
		phases  Phases
		wantErr bool
	}{
		{name: "defaults", phases: DefaultPhases},
		{name: "custom valid", phases: Phases{0.1, 0.3, 0.6, 0.9}},
		{name: "zero value", phases: Phases{}, wantErr: true},
		{name: "equal boundaries", phases: Phases{0.2, 0.2, 0.8, 0.9}, wantErr: true},
		{name: "descending", phases: Phases{0.5, 0.4, 0.8, 0.9}, wantErr: true},
		{name: "beyond one", phases: Phases{0.1, 0.3, 0.6, 1.0}, wantErr: true},
		{name: "nan", phases: Phases{0.1, math.NaN(), 0.6, 0.9}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.phases.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPhaseAt(t *testing.T) {
	p := DefaultPhases
	tests := []struct {
		progress float64
		want     Phase
	}{
		{0, PhaseIntroPause},
		{0.04, PhaseIntroPause},
		{0.05, PhaseIntroScale},
		{0.19, PhaseIntroScale},
		{0.20, PhaseHorizontal},
		{0.5, PhaseHorizontal},
		{0.80, PhaseOutroScale},
		{0.94, PhaseOutroScale},
		{0.95, PhaseOutroPause},
		{1, PhaseOutroPause},
	}
	for _, tt := range tests {
		if got := p.At(tt.progress); got != tt.want {
			t.Errorf("At(%g) = %v, want %v", tt.progress, got, tt.want)
		}
	}
}

func TestTransformEndpoints(t *testing.T) {
	tr := testTransform()
	ph := tr.Phases

	tests := []struct {
		name string
		p    float64
		want State
	}{
		{
			name: "start of scroll",
			p:    0,
			want: State{TranslateX: 0, IntroScale: 2.4, OutroScale: 1, ContentOpacity: 0},
		},
		{
			name: "end of intro pause",
			p:    ph.IntroPauseEnd,
			want: State{TranslateX: 0, IntroScale: 2.4, OutroScale: 1, ContentOpacity: 0},
		},
		{
			name: "end of intro scale",
			p:    ph.IntroScaleEnd,
			want: State{TranslateX: 0, IntroScale: 1, OutroScale: 1, ContentOpacity: 1},
		},
		{
			name: "start of outro scale",
			p:    ph.OutroScaleStart,
			want: State{TranslateX: -2000, IntroScale: 1, OutroScale: 1, ContentOpacity: 1},
		},
		{
			name: "start of outro pause",
			p:    ph.OutroPauseStart,
			want: State{TranslateX: -2000, IntroScale: 1, OutroScale: 2.4, ContentOpacity: 0},
		},
		{
			name: "end of scroll",
			p:    1,
			want: State{TranslateX: -2000, IntroScale: 1, OutroScale: 2.4, ContentOpacity: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.At(tt.p)
			if math.Abs(got.TranslateX-tt.want.TranslateX) > eps {
				t.Errorf("TranslateX = %g, want %g", got.TranslateX, tt.want.TranslateX)
			}
			if math.Abs(got.IntroScale-tt.want.IntroScale) > eps {
				t.Errorf("IntroScale = %g, want %g", got.IntroScale, tt.want.IntroScale)
			}
			if math.Abs(got.OutroScale-tt.want.OutroScale) > eps {
				t.Errorf("OutroScale = %g, want %g", got.OutroScale, tt.want.OutroScale)
			}
			if math.Abs(got.ContentOpacity-tt.want.ContentOpacity) > eps {
				t.Errorf("ContentOpacity = %g, want %g", got.ContentOpacity, tt.want.ContentOpacity)
			}
		})
	}
}

// TestContinuityAtBoundaries samples each output just before and just after
// every phase boundary; no jump may exceed what the step size explains.
func TestContinuityAtBoundaries(t *testing.T) {
	tr := testTransform()
	ph := tr.Phases
	const step = 1e-7

	// Steepest slope across any piece bounds the allowed jump.
	const slack = 1e-2

	boundaries := []float64{ph.IntroPauseEnd, ph.IntroScaleEnd, ph.OutroScaleStart, ph.OutroPauseStart}
	outputs := []struct {
		name string
		f    func(float64) float64
	}{
		{"IntroScale", tr.IntroScale},
		{"OutroScale", tr.OutroScale},
		{"TranslateX", tr.TranslateX},
		{"ContentOpacity", tr.ContentOpacity},
	}

	for _, b := range boundaries {
		for _, out := range outputs {
			before := out.f(b - step)
			after := out.f(b + step)
			if math.Abs(after-before) > slack {
				t.Errorf("%s jumps at boundary %g: %g -> %g", out.name, b, before, after)
			}
		}
	}
}

func TestTransformMonotonicTranslate(t *testing.T) {
	tr := testTransform()
	prev := math.Inf(1)
	for p := 0.0; p <= 1.0; p += 0.01 {
		tx := tr.TranslateX(p)
		if tx > prev+eps {
			t.Fatalf("TranslateX not monotonically non-increasing at p=%g", p)
		}
		prev = tx
	}
}

func TestMaxScroll(t *testing.T) {
	tests := []struct {
		name      string
		container float64
		viewport  float64
		want      float64
	}{
		{name: "overflow", container: 5000, viewport: 1920, want: -3080},
		{name: "exact fit", container: 1920, viewport: 1920, want: 0},
		{name: "underflow clamps to zero", container: 1000, viewport: 1920, want: 0},
		{name: "nan clamps to zero", container: math.NaN(), viewport: 1920, want: 0},
		{name: "inf clamps to zero", container: math.Inf(1), viewport: 1920, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxScroll(tt.container, tt.viewport); got != tt.want {
				t.Errorf("MaxScroll(%g, %g) = %g, want %g", tt.container, tt.viewport, got, tt.want)
			}
		})
	}
}

func TestTransformNoScrollDegenerate(t *testing.T) {
	tr := NewTransform(DefaultPhases, 1000, 1920)
	for p := 0.0; p <= 1.0; p += 0.1 {
		if tx := tr.TranslateX(p); tx != 0 {
			t.Fatalf("TranslateX(%g) = %g, want 0 when content fits viewport", p, tx)
		}
	}
}

func TestTransformClampsProgress(t *testing.T) {
	tr := testTransform()
	for _, p := range []float64{-1, 2, math.NaN()} {
		st := tr.At(p)
		if st.Progress < 0 || st.Progress > 1 {
			t.Errorf("At(%g).Progress = %g, want clamped to [0,1]", p, st.Progress)
		}
		if math.IsNaN(st.TranslateX) || math.IsNaN(st.IntroScale) ||
			math.IsNaN(st.OutroScale) || math.IsNaN(st.ContentOpacity) {
			t.Errorf("At(%g) produced NaN output: %+v", p, st)
		}
	}
}
