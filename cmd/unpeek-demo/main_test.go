package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRun_NoBackflow 测试多次重建后对话框只弹出一次
func TestRun_NoBackflow(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"--recreate", "3"}, &out))

	text := out.String()
	assert.Contains(t, text, "重建 3 次，对话框共弹出 1 次")
	assert.Equal(t, 1, strings.Count(text, "弹窗: 欢迎使用 unpeek"))
	assert.Contains(t, text, "[view-1] 加载中: 同步中...")
	assert.Contains(t, text, "[view-2] 加载结束")
}

// TestRun_ConfigFile 测试从 YAML 文件加载配置
func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unpeek.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metrics:\n  enabled: false\n"), 0o600))

	var out bytes.Buffer
	require.NoError(t, run([]string{"-c", path, "-n", "1"}, &out))
	assert.Contains(t, out.String(), "重建 1 次，对话框共弹出 1 次")
}

// TestParseFlags 测试参数校验
func TestParseFlags(t *testing.T) {
	_, err := parseFlags([]string{"--recreate", "0"})
	assert.Error(t, err)

	_, err = parseFlags([]string{"--help"})
	assert.ErrorIs(t, err, pflag.ErrHelp)

	f, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, 3, f.recreate)
}
