package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/glecs/ecs"
	"gopkg.in/yaml.v3"
)

type Report struct {
	// Configuration
	Duration   time.Duration `yaml:"duration"`
	Entities   int           `yaml:"entities"`
	Components int           `yaml:"components"`
	Systems    int           `yaml:"systems"`
	FrameRate  int           `yaml:"frameRate"`
	Seed       uint64        `yaml:"seed"`

	// Results
	TotalUpdates   int64             `yaml:"totalUpdates"`
	TotalTime      time.Duration     `yaml:"totalTime"`
	UpdateTime     Stats             `yaml:"updateTime"`
	Scene          ecs.SceneStats    `yaml:"-"`
	SystemTimes    []ecs.SystemStats `yaml:"systemTimes"`
	MemStatsStart  runtime.MemStats  `yaml:"-"`
	MemStatsEnd    runtime.MemStats  `yaml:"-"`
	HeapAllocDelta int64             `yaml:"heapAllocDelta"`
	NumGC          uint32            `yaml:"numGC"`
}

type Stats struct {
	Min     time.Duration   `yaml:"min"`
	Max     time.Duration   `yaml:"max"`
	Avg     time.Duration   `yaml:"avg"`
	Samples []time.Duration `yaml:"-"`
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Finish fills the fields derived from the scene and memory statistics.
func (r *Report) Finish(scene *ecs.Scene) {
	r.UpdateTime.Finalize()
	r.Scene = scene.CollectStats()
	r.SystemTimes = r.Scene.Systems
	r.HeapAllocDelta = int64(r.MemStatsEnd.HeapAlloc) - int64(r.MemStatsStart.HeapAlloc)
	r.NumGC = r.MemStatsEnd.NumGC - r.MemStatsStart.NumGC
}

const reportTemplate = `
# ECS Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Component Types:** {{.Components}}
- **Systems:** {{.Systems}}
- **Frame Rate:** {{.FrameRate}}
- **Seed:** {{.Seed}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Components
{{range .Scene.Types}}- {{.Name}}{{if .IsTag}} (tag){{end}}: {{.Count}}
{{end}}
## Systems
{{range .SystemTimes}}- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end) -> delta: {{mb .HeapAllocDelta}} MB
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end)
- Num GC:         {{.NumGC}}
- Total GC Pause: {{.MemStatsEnd.PauseTotalNs | ns}}
`

var reportFuncs = template.FuncMap{
	"mb": func(v any) string {
		switch val := v.(type) {
		case uint64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		case int64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		default:
			return "N/A"
		}
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}

// GenerateYAML writes the report's summary fields as YAML.
func (r *Report) GenerateYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
