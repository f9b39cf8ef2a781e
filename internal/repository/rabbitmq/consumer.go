package rabbitmq

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"fleetfuel/internal/domain/entity"
	"fleetfuel/internal/domain/usecase"
	"fleetfuel/pkg/utils"
)

type JobConsumer struct {
	channel     *amqp.Channel
	exchange    string
	routingKey  string
	queue       string
	UseCase     *usecase.PipelineUseCase
	Results     *ResultPublisher
	prefetchCnt int
}

func NewJobConsumer(conn *amqp.Connection, exchange, routingKey, queue string, uc *usecase.PipelineUseCase, results *ResultPublisher) (*JobConsumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	consumer := &JobConsumer{
		channel:     ch,
		exchange:    exchange,
		routingKey:  routingKey,
		queue:       queue,
		UseCase:     uc,
		Results:     results,
		prefetchCnt: 1,
	}

	_, err = ch.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if err := ch.QueueBind(
		queue,
		routingKey,
		exchange,
		false,
		nil,
	); err != nil {
		return nil, err
	}

	if err := ch.Qos(consumer.prefetchCnt, 0, false); err != nil {
		return nil, err
	}

	return consumer, nil
}

func (c *JobConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		c.queue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("JobConsumer shutting down")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				log.Println("RabbitMQ channel closed")
				return nil
			}

			var job entity.AggregationJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				log.Println("failed to unmarshal aggregation job:", err)
				msg.Nack(false, false)
				continue
			}

			go func(job entity.AggregationJob, msg amqp.Delivery) {
				result, err := c.UseCase.ProcessJob(ctx, &job)
				if err != nil {
					log.Printf("failed to process job %s: %v\n", job.JobID, err)
					msg.Nack(false, true)
					return
				}
				c.publishResult(ctx, result)
				msg.Ack(false)
			}(job, msg)
		}
	}
}

func (c *JobConsumer) publishResult(ctx context.Context, result *entity.BatchResult) {
	if c.Results == nil {
		return
	}
	body, err := utils.ToRawMessage(result)
	if err != nil {
		log.Printf("failed to marshal result for job %s: %v\n", result.JobID, err)
		return
	}
	if err := c.Results.Publish(ctx, body); err != nil {
		log.Printf("failed to publish result for job %s: %v\n", result.JobID, err)
	}
}
