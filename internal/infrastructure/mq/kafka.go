package mq

import (
	"errors"
	"log"

	"bizdesk/internal/config"

	"github.com/IBM/sarama"
)

var KafkaProducer sarama.SyncProducer

// InitKafka 初始化 Kafka 生产者
func InitKafka(cfg *config.KafkaConfig) sarama.SyncProducer {
	kafkaConfig := sarama.NewConfig()
	kafkaConfig.Producer.RequiredAcks = sarama.WaitForAll // 等待所有副本确认
	kafkaConfig.Producer.Retry.Max = 3                    // 重试次数
	kafkaConfig.Producer.Return.Successes = true          // 返回成功消息

	producer, err := sarama.NewSyncProducer(cfg.Brokers, kafkaConfig)
	if err != nil {
		log.Fatalf("[Kafka] 创建生产者失败: %v", err)
	}

	KafkaProducer = producer
	log.Printf("[Kafka] 生产者就绪，brokers=%v，业务事件经发件箱投递", cfg.Brokers)
	return producer
}

// SendMessage 发送业务事件到 Kafka（销售、审核、库存告警共用）
func SendMessage(topic, key, value string) error {
	if KafkaProducer == nil {
		return errors.New("Kafka 生产者未初始化")
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.StringEncoder(value),
	}

	_, _, err := KafkaProducer.SendMessage(msg)
	return err
}

// CloseKafka 关闭 Kafka 生产者
func CloseKafka() {
	if KafkaProducer != nil {
		KafkaProducer.Close()
	}
}
