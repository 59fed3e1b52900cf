package config

// SampleConfig returns a fully commented configuration with every option
// set to its default.
func SampleConfig() string {
	return `# Scrollmark configuration
version: "1.0"

# Analysis service the CSV is posted to. Every metric is computed there.
backend:
  endpoint: http://localhost:5000/analyze
  # 0 waits as long as the service takes
  timeout: 0s

# Simulated progress shown while waiting. It is cosmetic and never reaches
# 100 before the service answers.
progress:
  step: 5
  interval: 100ms
  ceiling: 90

ui:
  # default, dark, light or high-contrast
  theme: default
  show_progress: true
  # directory the file picker opens in
  start_dir: .

output:
  # text, json, markdown or csv
  default_format: text
  # auto, always or never
  color_mode: auto
  verbose: false

# scrollmark serve
server:
  addr: 127.0.0.1:8080
  # empty stores uploads under $XDG_DATA_HOME/scrollmark/uploads
  upload_dir: ""
  allowed_origins:
    - http://localhost:3000
    - http://127.0.0.1:3000

# New-post predictor. Scores are simulated, not derived from your data.
virality:
  delay: 2s
  min_score: 60
  # exclusive
  max_score: 100
`
}

// MinimalSampleConfig returns only the settings most people change
func MinimalSampleConfig() string {
	return `version: "1.0"

backend:
  endpoint: http://localhost:5000/analyze

ui:
  theme: default

output:
  default_format: text
`
}
