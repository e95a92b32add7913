package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riichi/common/config"
	"riichi/common/database"
	"riichi/common/log"
	"riichi/settle"
	"riichi/settle/persist"
)

func Run(ctx context.Context) error {
	var store *persist.SettlementStore
	var mongoMgr *database.MongoManager

	// mongo 未配置时跳过落库，结算仍可用
	if config.SettleNodeConfig.MongoConf.Url != "" {
		var err error
		mongoMgr, err = database.NewMongo(config.SettleNodeConfig.MongoConf)
		if err != nil {
			return err
		}
		store = persist.NewSettlementStore(mongoMgr.Db)
	}

	worker := settle.NewWorker(store)

	go func() {
		if err := worker.Start(ctx, config.SettleNodeConfig.NatsConfig.URL); err != nil {
			log.Fatal("worker 启动失败，err:%#v", err)
		}
	}()

	stop := func() {
		log.Info("正在关闭 settle 服务...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		done := make(chan struct{})
		go func() {
			worker.Close()
			if err := mongoMgr.Close(); err != nil {
				log.Warn("关闭 mongo 连接失败: %v", err)
			}
			close(done)
		}()

		select {
		case <-done:
			log.Info("settle 服务已关闭")
		case <-shutdownCtx.Done():
			log.Warn("关闭 settle 服务超时（5秒）")
		}
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	for {
		select {
		case <-ctx.Done():
			stop()
			return nil
		case s := <-c:
			switch s {
			case syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT:
				stop()
				log.Info("中断信号，服务停止")
				return nil
			case syscall.SIGHUP:
				stop()
				log.Info("挂起信号，服务停止")
				return nil
			default:
				return nil
			}
		}
	}
}
