package gen

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	searchDir    = "../../testing/testdata/petstore/models"
	manifestFile = "../../testing/testdata/petstore/oasgen.yaml"
)

var outputTypes = []string{"json", "yaml"}

func TestGen_Build(t *testing.T) {
	config := &Config{
		ManifestFile: manifestFile,
		SearchDir:    searchDir,
		OutputDir:    t.TempDir(),
		OutputTypes:  outputTypes,
	}
	assert.NoError(t, New().Build(config))

	expectedFiles := []string{
		filepath.Join(config.OutputDir, "openapi.json"),
		filepath.Join(config.OutputDir, "openapi.yaml"),
	}
	for _, expectedFile := range expectedFiles {
		if _, err := os.Stat(expectedFile); os.IsNotExist(err) {
			require.NoError(t, err)
		}
	}
}

func TestGen_BuildDocsGo(t *testing.T) {
	config := &Config{
		ManifestFile: manifestFile,
		SearchDir:    searchDir,
		OutputDir:    t.TempDir(),
		OutputTypes:  []string{"go"},
		PackageName:  "docs",
	}
	assert.NoError(t, New().Build(config))

	content, err := os.ReadFile(filepath.Join(config.OutputDir, "docs.go"))
	require.NoError(t, err)

	code := string(content)
	assert.Contains(t, code, "package docs")
	assert.Contains(t, code, `"title": "{{.Title}}"`)
	assert.Contains(t, code, "oasgen.Register(OpenAPIInfo.InstanceName(), OpenAPIInfo)")
}

func TestGen_SpecificOutputTypes(t *testing.T) {
	config := &Config{
		ManifestFile: manifestFile,
		SearchDir:    searchDir,
		OutputDir:    t.TempDir(),
		OutputTypes:  []string{"json", "unknownType"},
	}
	assert.NoError(t, New().Build(config))

	tt := []struct {
		expectedFile string
		shouldExist  bool
	}{
		{filepath.Join(config.OutputDir, "openapi.json"), true},
		{filepath.Join(config.OutputDir, "openapi.yaml"), false},
	}
	for _, tc := range tt {
		_, err := os.Stat(tc.expectedFile)
		if tc.shouldExist {
			if os.IsNotExist(err) {
				require.NoError(t, err)
			}
		} else {
			require.Error(t, err)
			require.True(t, errors.Is(err, os.ErrNotExist))
		}
	}
}

func TestGen_BuildInstanceName(t *testing.T) {
	config := &Config{
		ManifestFile: manifestFile,
		SearchDir:    searchDir,
		OutputDir:    t.TempDir(),
		OutputTypes:  outputTypes,
	}
	assert.NoError(t, New().Build(config))

	// Default instance name produces openapi.json/openapi.yaml
	expectedFiles := []string{
		filepath.Join(config.OutputDir, "openapi.json"),
		filepath.Join(config.OutputDir, "openapi.yaml"),
	}
	for _, expectedFile := range expectedFiles {
		if _, err := os.Stat(expectedFile); os.IsNotExist(err) {
			require.NoError(t, err)
		}
	}

	// Custom instance name produces admin_openapi.json/admin_openapi.yaml
	config.OutputDir = t.TempDir()
	config.InstanceName = "admin"
	assert.NoError(t, New().Build(config))

	customFiles := []string{
		filepath.Join(config.OutputDir, config.InstanceName+"_"+"openapi.json"),
		filepath.Join(config.OutputDir, config.InstanceName+"_"+"openapi.yaml"),
	}
	for _, expectedFile := range customFiles {
		if _, err := os.Stat(expectedFile); os.IsNotExist(err) {
			require.NoError(t, err)
		}
	}
}

func TestGen_BuildWithValidation(t *testing.T) {
	config := &Config{
		ManifestFile: manifestFile,
		SearchDir:    searchDir,
		OutputDir:    t.TempDir(),
		OutputTypes:  outputTypes,
		Validate:     true,
	}
	assert.NoError(t, New().Build(config))
}

func TestGen_BuildSnakeCase(t *testing.T) {
	config := &Config{
		ManifestFile:       manifestFile,
		SearchDir:          searchDir,
		OutputDir:          t.TempDir(),
		OutputTypes:        []string{"json"},
		PropNamingStrategy: "snakecase",
	}
	assert.NoError(t, New().Build(config))
}

func TestGen_UnknownNamingStrategy(t *testing.T) {
	config := &Config{
		ManifestFile:       manifestFile,
		SearchDir:          searchDir,
		OutputDir:          t.TempDir(),
		OutputTypes:        outputTypes,
		PropNamingStrategy: "kebabcase",
	}
	assert.EqualError(t, New().Build(config), "unknown property naming strategy: kebabcase")
}

func TestGen_jsonIndent(t *testing.T) {
	config := &Config{
		ManifestFile: manifestFile,
		SearchDir:    searchDir,
		OutputDir:    t.TempDir(),
		OutputTypes:  outputTypes,
	}

	gen := New()
	gen.jsonIndent = func(data interface{}) ([]byte, error) {
		return nil, errors.New("fail")
	}

	assert.Error(t, gen.Build(config))
}

func TestGen_jsonToYAML(t *testing.T) {
	config := &Config{
		ManifestFile: manifestFile,
		SearchDir:    searchDir,
		OutputDir:    t.TempDir(),
		OutputTypes:  outputTypes,
	}

	gen := New()
	gen.jsonToYAML = func(data []byte) ([]byte, error) {
		return nil, errors.New("fail")
	}
	assert.Error(t, gen.Build(config))

	// the json doc is already written when the yaml conversion fails
	if _, err := os.Stat(filepath.Join(config.OutputDir, "openapi.json")); os.IsNotExist(err) {
		require.NoError(t, err)
	}
}

func TestGen_SearchDirIsNotExist(t *testing.T) {
	config := &Config{
		ManifestFile: manifestFile,
		SearchDir:    "../isNotExistDir",
		OutputDir:    t.TempDir(),
		OutputTypes:  outputTypes,
	}

	assert.EqualError(t, New().Build(config), "dir: ../isNotExistDir does not exist")
}

func TestGen_ManifestIsNotExist(t *testing.T) {
	config := &Config{
		ManifestFile: "./notExists.yaml",
		SearchDir:    searchDir,
		OutputDir:    t.TempDir(),
		OutputTypes:  outputTypes,
	}

	assert.Error(t, New().Build(config))
}

func TestGen_OutputIsNotExist(t *testing.T) {
	config := &Config{
		ManifestFile: manifestFile,
		SearchDir:    searchDir,
		OutputDir:    "/dev/null",
		OutputTypes:  outputTypes,
	}
	assert.Error(t, New().Build(config))
}

func TestGen_FailToWrite(t *testing.T) {
	config := &Config{
		ManifestFile: manifestFile,
		SearchDir:    searchDir,
		OutputDir:    t.TempDir(),
		OutputTypes:  outputTypes,
	}

	// a directory squatting on the output filename makes the write fail
	require.NoError(t, os.Mkdir(filepath.Join(config.OutputDir, "openapi.json"), 0755))

	assert.Error(t, New().Build(config))
}

func TestGen_CustomDelims(t *testing.T) {
	config := &Config{
		ManifestFile:       manifestFile,
		SearchDir:          searchDir,
		OutputDir:          t.TempDir(),
		OutputTypes:        []string{"go"},
		PackageName:        "docs",
		LeftTemplateDelim:  "{%",
		RightTemplateDelim: "%}",
	}
	assert.NoError(t, New().Build(config))

	content, err := os.ReadFile(filepath.Join(config.OutputDir, "docs.go"))
	require.NoError(t, err)

	code := string(content)
	assert.Contains(t, code, "{% marshal .Servers %}")
	assert.Contains(t, code, `LeftDelim:        "{%"`)
	assert.Contains(t, code, `RightDelim:       "%}"`)
}

func TestGen_parseExcludes(t *testing.T) {
	excludes := parseExcludes("./models, ,**/generated,")

	require.Len(t, excludes, 2)
	// plain paths are resolved to absolute, patterns are kept as-is
	assert.True(t, filepath.IsAbs(excludes[0]))
	assert.True(t, strings.HasSuffix(excludes[0], "models"))
	assert.Equal(t, "**/generated", excludes[1])
}

func TestGen_parseCommaList(t *testing.T) {
	assert.Equal(t, []string{}, parseCommaList(""))
	assert.Equal(t, []string{"a", "b"}, parseCommaList(" a ,b,"))
}
