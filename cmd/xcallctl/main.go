// xcallctl 是日志点目录文件的命令行检查工具。
//
// 用法:
//
//	xcallctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --catalog  目录文件路径（.yaml/.yml/.json，必需）
//	--strict       拒绝目录中的未知字段
//
// 命令:
//
//	list                      列出全部操作及解析后的级别
//	describe <op>             查看操作的规范化描述符与消息模板
//	render <op> [args...]     渲染调用消息
//	json <op> [args...]       输出 JSON 详情（格式化）
//	simulate <op> [args...]   以真实日志管线模拟一次调用
//	help                      显示帮助信息
//
// <op> 为操作键 "Type.Name"。实参按 JSON 解析，解析失败时按原样作为字符串，
// 因此 '{"name":"bob"}' 可用于验证属性路径占位符。
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败（目录加载失败、未知操作等）
//	2: 参数错误（缺少必需参数、未知命令等）
//
// 示例:
//
//	xcallctl -c catalog.yaml list
//	xcallctl -c catalog.yaml describe billing.Service.Charge
//	xcallctl -c catalog.yaml render billing.Service.Charge '{"name":"bob","id":7}' 12.5
//	xcallctl -c catalog.yaml simulate --format json --fail "card declined" billing.Service.Charge '{"id":7}' 3
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(context.Background(), os.Args))
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "xcallctl",
		Usage:   "日志点目录检查工具",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog",
				Aliases: []string{"c"},
				Usage:   "目录文件路径",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "拒绝目录中的未知字段",
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，由 run() 统一映射退出码。
		ExitErrHandler: func(_ context.Context, cmd *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(cmd.Root().ErrWriter, err)
			}
		},
	}
}

func run(ctx context.Context, args []string) int {
	return runApp(ctx, createApp(), args)
}

// runApp 执行 app 并把错误映射为退出码。
func runApp(ctx context.Context, app *cli.Command, args []string) int {
	if app.ErrWriter == nil {
		app.ErrWriter = os.Stderr
	}
	if err := app.Run(ctx, args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(app.ErrWriter, "参数错误: %v\n", usageErr)
			return 2
		}
		if _, ok := err.(cli.ExitCoder); ok || isCLIUsageError(err) {
			return 2
		}
		fmt.Fprintf(app.ErrWriter, "错误: %v\n", err)
		return 1
	}
	return 0
}

// isCLIUsageError 识别 flag 解析器产生的参数错误，urfave/cli 没有为它们定义类型。
func isCLIUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{
		"flag provided but not defined",
		"flag needs an argument",
		"invalid value",
	} {
		if strings.Contains(msg, prefix) {
			return true
		}
	}
	return false
}
