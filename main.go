package main

import (
	"flag"
	"log"
	"os"

	"github.com/gonewx/peashot/pkg/app"
	"github.com/gonewx/peashot/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "data/behavior.yaml", "行为配置文件路径")
	watch      = flag.Bool("watch", true, "监听配置和脚本变化并热重载")
	noSave     = flag.Bool("no-save", false, "不保存统计数据")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	appName := "peashot"
	if *noSave {
		appName = ""
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Watch:      *watch,
		AppName:    appName,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("沙盒初始化失败: %v", err)
	}

	w, h := gameApp.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("peashot - 子弹沙盒")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)
	if err := gameApp.Close(); err != nil {
		log.Printf("[main] Warning: %v", err)
	}
	if runErr != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(runErr)
	}
}
