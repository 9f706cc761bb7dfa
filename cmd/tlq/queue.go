package main

import (
	"fmt"
)

type QueueCommands struct {
	Health HealthCommand `cmd:"" name:"health" help:"Check whether the server is healthy." group:"QUEUE"`
	Purge  PurgeCommand  `cmd:"" name:"purge" help:"Remove all messages from the queue." group:"QUEUE"`
}

type HealthCommand struct{}

type PurgeCommand struct{}

func (cmd *HealthCommand) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	defer client.Close()

	if !client.HealthCheck(ctx.ctx) {
		return fmt.Errorf("server at %s is not healthy", client.Config().BaseURL())
	}

	fmt.Println("ok")
	return nil
}

func (cmd *PurgeCommand) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	defer client.Close()

	return client.PurgeQueue(ctx.ctx)
}
