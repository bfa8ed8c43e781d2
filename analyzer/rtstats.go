package analyzer

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultRTStatsConfigFile is the threshold file used when a case names none.
const DefaultRTStatsConfigFile = "datalog_rt_stats.default.yaml"

var rtMetricPattern = regexp.MustCompile(`^(?P<metric>.*):\s+(?P<avg>\d+\.\d+) us;\s+(?P<count>\d+);\s+(?P<max>\d+\.\d+) us;`)

// RTStatsConfig holds the reference average and the accepted relative
// deviation of every tracked real-time metric.
type RTStatsConfig struct {
	Ref                map[string]float64 `yaml:"Ref"`
	DeviationThreshold map[string]float64 `yaml:"DeviationThreshold"`
}

// LoadRTStatsConfig ...
func LoadRTStatsConfig(pth string) (*RTStatsConfig, error) {
	content, err := os.ReadFile(pth)
	if err != nil {
		return nil, fmt.Errorf("failed to read real-time stats thresholds (%s): %w", pth, err)
	}

	var cfg RTStatsConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse real-time stats thresholds (%s): %w", pth, err)
	}
	if len(cfg.Ref) == 0 {
		return nil, fmt.Errorf("real-time stats thresholds (%s) define no Ref metric", pth)
	}

	var unbounded []string
	for metric := range cfg.Ref {
		if _, ok := cfg.DeviationThreshold[metric]; !ok {
			unbounded = append(unbounded, metric)
		}
	}
	if len(unbounded) > 0 {
		sort.Strings(unbounded)
		return nil, fmt.Errorf("real-time stats thresholds (%s) define no DeviationThreshold for: %s", pth, strings.Join(unbounded, ", "))
	}

	return &cfg, nil
}

// RealTimeMetric is one measured metric compared to its reference.
type RealTimeMetric struct {
	Name       string
	Average    float64
	Max        float64
	Count      int
	Reference  float64
	Deviation  float64
	Normalized float64
	Flagged    bool
}

func (m RealTimeMetric) String() string {
	return fmt.Sprintf("%s: avg %.0f us, max %.0f us, count %d, normalized %.2f (allowed %.2f..%.2f)",
		m.Name, m.Average, m.Max, m.Count, m.Normalized, 1-m.Deviation, 1+m.Deviation)
}

func (c RTStatsConfig) metricNames() []string {
	var names []string
	for name := range c.Ref {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// collectRTStatsLines returns, per configured metric, the last line of the
// files mentioning it, starting at the metric name.
func collectRTStatsLines(cfg RTStatsConfig, paths ...string) (map[string]string, error) {
	type metricPattern struct {
		name    string
		pattern *regexp.Regexp
	}

	var patterns []metricPattern
	for _, name := range cfg.metricNames() {
		patterns = append(patterns, metricPattern{
			name:    name,
			pattern: regexp.MustCompile(`^.*?(\b` + regexp.QuoteMeta(name) + `\b.*)`),
		})
	}

	lines := map[string]string{}
	for _, pth := range paths {
		f, err := os.Open(pth)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", pth, err)
		}

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), " \t\r")
			for _, p := range patterns {
				if match := p.pattern.FindStringSubmatch(line); match != nil {
					lines[p.name] = match[1]
				}
			}
		}

		err = scanner.Err()
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", pth, err)
		}
	}

	return lines, nil
}

// evaluateRTStats normalizes the measured averages against the reference table.
func evaluateRTStats(cfg RTStatsConfig, lines map[string]string) []RealTimeMetric {
	var metrics []RealTimeMetric
	for _, name := range cfg.metricNames() {
		line, ok := lines[name]
		if !ok {
			continue
		}

		match := rtMetricPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		metricName := strings.TrimSpace(match[rtMetricPattern.SubexpIndex("metric")])
		ref, ok := cfg.Ref[metricName]
		if !ok || ref == 0 {
			continue
		}

		avg, _ := strconv.ParseFloat(match[rtMetricPattern.SubexpIndex("avg")], 64)
		maximum, _ := strconv.ParseFloat(match[rtMetricPattern.SubexpIndex("max")], 64)
		count, _ := strconv.Atoi(match[rtMetricPattern.SubexpIndex("count")])

		metric := RealTimeMetric{
			Name:       metricName,
			Average:    avg,
			Max:        maximum,
			Count:      count,
			Reference:  ref,
			Normalized: math.Round(avg/ref*100) / 100,
		}

		if deviation, ok := cfg.DeviationThreshold[metricName]; ok {
			metric.Deviation = deviation
			metric.Flagged = metric.Normalized > 1+deviation || metric.Normalized < 1-deviation
		}

		metrics = append(metrics, metric)
	}
	return metrics
}
