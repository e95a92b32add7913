package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"riichi/common/config"
	"riichi/common/log"
	"riichi/common/metrics"
	"riichi/settle/app"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "settle",
	Short: "settle 立直麻将结算节点",
	Long:  `settle 立直麻将结算节点，通过 nats 提供和牌结算与听牌查询`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.Load(configFile); err != nil {
			log.Fatal("文件配置发生错误：%v", err)
		}
		log.InitLog(config.SettleNodeConfig.ID, config.SettleNodeConfig.LogConf.Level)
		log.Info(fmt.Sprintf("配置文件: %+v", config.SettleNodeConfig))

		if port := config.SettleNodeConfig.MetricPort; port > 0 {
			go func() {
				log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", port)
				if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", port)); err != nil {
					panic(err)
				}
			}()
		}

		if err := app.Run(context.Background()); err != nil {
			log.Error("发生异常: %v", err)
			os.Exit(-1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "configFile", "resource/application.yml", "resource file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %#v", err)
		os.Exit(1)
	}
}
