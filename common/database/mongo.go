package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"riichi/common/config"
	"riichi/common/log"
)

type MongoManager struct {
	Cli *mongo.Client
	Db  *mongo.Database
}

func NewMongo(conf config.MongoConf) (*MongoManager, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(conf.Url)
	clientOptions.SetMinPoolSize(uint64(conf.MinPoolSize))
	clientOptions.SetMaxPoolSize(uint64(conf.MaxPoolSize))

	if conf.Username != "" && conf.Password != "" {
		clientOptions.SetAuth(options.Credential{
			Username: conf.Username,
			Password: conf.Password,
		})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Error("mongodb 连接错误: %v", err)
		return nil, err
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		log.Error("mongodb Ping 错误: %v", err)
		return nil, err
	}

	m := &MongoManager{Cli: client}
	m.Db = m.Cli.Database(conf.Db)
	return m, nil
}

func (m *MongoManager) Close() error {
	if m == nil || m.Cli == nil {
		return nil
	}
	return m.Cli.Disconnect(context.TODO())
}
