package ciconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parse(t *testing.T, src string) *Config {
	t.Helper()
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))
	return &cfg
}

const validConfig = `
version: 2
jobs:
  build:
    docker:
      - image: cimg/go:1.23
      - image: cimg/postgres:16.2
        environment:
          POSTGRES_PASSWORD: password
    steps:
      - checkout
      - restore_cache:
          keys:
            - deps-v1-{{ checksum "go.sum" }}
      - run: go mod download
      - run:
          name: Run tests
          command: go test ./...
      - save_cache:
          key: deps-v1-{{ checksum "go.sum" }}
          paths:
            - /home/circleci/go/pkg/mod
`

func TestParseSteps(t *testing.T) {
	cfg := parse(t, validConfig)

	job, ok := cfg.Jobs["build"]
	require.True(t, ok)
	require.Len(t, job.Steps, 5)

	assert.Equal(t, "checkout", job.Steps[0].Kind)

	require.NotNil(t, job.Steps[1].RestoreCache)
	assert.Equal(t, []string{`deps-v1-{{ checksum "go.sum" }}`}, job.Steps[1].RestoreCache.Keys)

	require.NotNil(t, job.Steps[2].Run)
	assert.Equal(t, "go mod download", job.Steps[2].Run.Command)

	require.NotNil(t, job.Steps[3].Run)
	assert.Equal(t, "Run tests", job.Steps[3].Run.Name)
	assert.Equal(t, "go test ./...", job.Steps[3].Run.Command)

	require.NotNil(t, job.Steps[4].SaveCache)
	assert.Equal(t, []string{"/home/circleci/go/pkg/mod"}, job.Steps[4].SaveCache.Paths)

	require.Len(t, job.Docker, 2)
	assert.Equal(t, "password", job.Docker[1].Environment["POSTGRES_PASSWORD"])
}

func TestValidateOK(t *testing.T) {
	assert.NoError(t, Validate(parse(t, validConfig)))
}

func TestValidateRepoConfig(t *testing.T) {
	cfg, err := Load("../../.circleci/config.yml")
	require.NoError(t, err)
	assert.NoError(t, Validate(cfg))
}

func TestValidateViolations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "wrong version",
			src: `
version: 3
jobs:
  build:
    docker:
      - image: cimg/go:1.23
    steps:
      - checkout
`,
			want: "version must be 2",
		},
		{
			name: "no jobs",
			src:  `version: 2`,
			want: "at least one job is required",
		},
		{
			name: "no docker images",
			src: `
version: 2
jobs:
  build:
    steps:
      - checkout
`,
			want: "at least one docker image is required",
		},
		{
			name: "empty image ref",
			src: `
version: 2
jobs:
  build:
    docker:
      - environment:
          FOO: bar
    steps:
      - checkout
`,
			want: "image must not be empty",
		},
		{
			name: "no steps",
			src: `
version: 2
jobs:
  build:
    docker:
      - image: cimg/go:1.23
`,
			want: "at least one step is required",
		},
		{
			name: "unknown step kind",
			src: `
version: 2
jobs:
  build:
    docker:
      - image: cimg/go:1.23
    steps:
      - deploy
`,
			want: `unknown step kind "deploy"`,
		},
		{
			name: "run without command",
			src: `
version: 2
jobs:
  build:
    docker:
      - image: cimg/go:1.23
    steps:
      - run:
          name: missing command
`,
			want: "run requires a command",
		},
		{
			name: "restore_cache without keys",
			src: `
version: 2
jobs:
  build:
    docker:
      - image: cimg/go:1.23
    steps:
      - restore_cache: {}
`,
			want: "restore_cache requires key or keys",
		},
		{
			name: "save_cache without paths",
			src: `
version: 2
jobs:
  build:
    docker:
      - image: cimg/go:1.23
    steps:
      - save_cache:
          key: deps-v1
`,
			want: "save_cache requires paths",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(parse(t, tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.yml")
	assert.Error(t, err)
}

func TestStepMappingWithTwoKeys(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte(`
version: 2
jobs:
  build:
    steps:
      - run: echo hi
        save_cache: {}
`), &cfg)
	assert.Error(t, err)
}
