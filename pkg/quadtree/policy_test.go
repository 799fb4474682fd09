package quadtree

import (
	"math"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxDepth != 7 {
		t.Errorf("MaxDepth = %d, want 7", cfg.MaxDepth)
	}
	if cfg.ColorThreshold != 10.0 {
		t.Errorf("ColorThreshold = %v, want 10.0", cfg.ColorThreshold)
	}
	if cfg.SizeThreshold != 5 {
		t.Errorf("SizeThreshold = %d, want 5", cfg.SizeThreshold)
	}
	if cfg.MaxLeaves != 100_000 {
		t.Errorf("MaxLeaves = %d, want 100000", cfg.MaxLeaves)
	}
	if cfg.Metric != MetricEuclidean {
		t.Errorf("Metric = %v, want euclidean", cfg.Metric)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero depth", func(c *Config) { c.MaxDepth = 0 }, false},
		{"zero thresholds", func(c *Config) { c.ColorThreshold, c.SizeThreshold = 0, 0 }, false},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, true},
		{"negative color threshold", func(c *Config) { c.ColorThreshold = -0.5 }, true},
		{"NaN color threshold", func(c *Config) { c.ColorThreshold = math.NaN() }, true},
		{"+Inf color threshold", func(c *Config) { c.ColorThreshold = math.Inf(1) }, true},
		{"-Inf color threshold", func(c *Config) { c.ColorThreshold = math.Inf(-1) }, true},
		{"negative size threshold", func(c *Config) { c.SizeThreshold = -2 }, true},
		{"zero leaf cap", func(c *Config) { c.MaxLeaves = 0 }, true},
		{"unknown metric", func(c *Config) { c.Metric = Metric(7) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestShouldSubdivide(t *testing.T) {
	uniform, _ := Root(newTestImage(32, 32, solid(red)))
	mixed, _ := Root(splitImage(32, 32))

	deep := mixed
	deep.Depth = 7

	thin := mixed
	thin.Width = 5

	short := mixed
	short.Height = 5

	tests := []struct {
		name   string
		region Region
		want   bool
	}{
		{"mixed colors", mixed, true},
		{"uniform", uniform, false},
		{"at max depth", deep, false},
		{"width at size threshold", thin, false},
		{"height at size threshold", short, false},
	}

	cfg := DefaultConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldSubdivide(tt.region, cfg); got != tt.want {
				t.Errorf("ShouldSubdivide() = %v, want %v", got, tt.want)
			}
			if again := ShouldSubdivide(tt.region, cfg); again != tt.want {
				t.Errorf("second ShouldSubdivide() = %v, want %v", again, tt.want)
			}
		})
	}
}

func TestShouldSubdivideThresholdIsStrict(t *testing.T) {
	r, _ := Root(splitImage(16, 16))
	cfg := DefaultConfig()
	cfg.ColorThreshold = NonUniformity(r, cfg.Metric)

	if ShouldSubdivide(r, cfg) {
		t.Error("non-uniformity equal to the threshold should not split")
	}

	cfg.ColorThreshold -= 0.001
	if !ShouldSubdivide(r, cfg) {
		t.Error("non-uniformity above the threshold should split")
	}
}

func TestShouldSubdivideSkipsStatsWhenShallowChecksFail(t *testing.T) {
	r, _ := Root(splitImage(16, 16))
	cfg := DefaultConfig()
	cfg.MaxDepth = 0

	called := false
	shouldSubdivide(r, cfg, func() float64 {
		called = true
		return 1000
	})
	if called {
		t.Error("non-uniformity evaluated although depth check failed")
	}
}
