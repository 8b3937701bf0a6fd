// Package main 提供 unpeek 演示程序
//
// 模拟同一界面被多次重建：对话框命令只在第一个视图上弹出一次，
// 之后重建的视图不会再次收到（无回流）；加载状态作为状态量会同步到新视图。
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/dep2p/go-unpeek"
	"github.com/dep2p/go-unpeek/config"
	"github.com/dep2p/go-unpeek/internal/core/lifecycle"
	"github.com/dep2p/go-unpeek/internal/screen"
	"github.com/dep2p/go-unpeek/pkg/lib/log"
	"github.com/dep2p/go-unpeek/pkg/types"
)

var logger = log.Logger("unpeek/cmd")

// flags 命令行参数
type flags struct {
	configFile string
	recreate   int
	logLevel   string
	timeout    time.Duration
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fs := pflag.NewFlagSet("unpeek-demo", pflag.ContinueOnError)
	fs.StringVarP(&f.configFile, "config", "c", "", "配置文件路径（.json / .yaml）")
	fs.IntVarP(&f.recreate, "recreate", "n", 3, "界面重建次数")
	fs.StringVar(&f.logLevel, "log-level", "", "日志级别，格式 组件=级别,...,默认级别")
	fs.DurationVar(&f.timeout, "timeout", 5*time.Second, "启停超时")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if f.recreate < 1 {
		return f, fmt.Errorf("--recreate must be at least 1, got %d", f.recreate)
	}
	return f, nil
}

func loadConfig(f flags) (*config.Config, error) {
	cfg := config.NewConfig()
	if f.configFile != "" {
		loaded, err := config.LoadFile(f.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	return cfg, nil
}

func run(args []string, out io.Writer) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(f)
	if err != nil {
		return fmt.Errorf("加载配置: %w", err)
	}

	core, err := unpeek.New(unpeek.WithConfig(cfg))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()
	if err := core.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), f.timeout)
		defer stopCancel()
		if err := core.Stop(stopCtx); err != nil {
			logger.Warn("停止失败", "err", err)
		}
	}()

	ctrl, err := core.NewController("demo")
	if err != nil {
		return err
	}

	dialogs := 0
	for i := 0; i < f.recreate; i++ {
		shown, err := runView(context.Background(), ctrl, i, out)
		if err != nil {
			return err
		}
		dialogs += shown
	}

	fmt.Fprintf(out, "重建 %d 次，对话框共弹出 %d 次\n", f.recreate, dialogs)
	return nil
}

// runView 挂载一个视图实例，首个实例触发命令，随后销毁视图
func runView(ctx context.Context, ctrl *screen.Controller, id int, out io.Writer) (int, error) {
	owner := lifecycle.NewOwner(fmt.Sprintf("view-%d", id))
	if err := owner.Start(); err != nil {
		return 0, err
	}
	defer owner.Destroy()

	view := &printView{id: id, out: out}
	if _, err := ctrl.Attach(owner, view); err != nil {
		return 0, err
	}

	if id == 0 {
		if err := ctrl.ShowDialog("欢迎使用 unpeek"); err != nil {
			return 0, err
		}
		if err := ctrl.ShowLoading("同步中..."); err != nil {
			return 0, err
		}
	}
	if err := ctrl.ShowToast(ctx, fmt.Sprintf("视图 %d 已就绪", id)); err != nil {
		return 0, err
	}
	if id == 1 {
		if err := ctrl.DismissLoading(); err != nil {
			return 0, err
		}
	}
	return view.dialogs, nil
}

// printView 把收到的调用打印到 out
type printView struct {
	id      int
	out     io.Writer
	dialogs int
}

func (v *printView) printf(format string, args ...any) {
	fmt.Fprintf(v.out, "[view-%d] "+format+"\n", append([]any{v.id}, args...)...)
}

func (v *printView) ShowDialog(message string) {
	v.dialogs++
	v.printf("弹窗: %s", message)
}

func (v *printView) HideDialog() { v.printf("关闭弹窗") }

func (v *printView) SetLoading(state types.LoadingState) {
	if state.Active {
		v.printf("加载中: %s", state.Message)
		return
	}
	v.printf("加载结束")
}

func (v *printView) ShowToast(message string, _ bool) { v.printf("提示: %s", message) }

func (v *printView) ShowError(message string, err error) { v.printf("错误: %s (%v)", message, err) }

func (v *printView) Navigate(route string, _ map[string]any) { v.printf("导航: %s", route) }

func (v *printView) Back() { v.printf("返回") }

func (v *printView) Finish(result any) { v.printf("结束: %v", result) }
