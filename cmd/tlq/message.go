package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type MessageCommands struct {
	Add    AddCommand    `cmd:"" name:"add" help:"Add a message to the queue." group:"MESSAGE"`
	Get    GetCommand    `cmd:"" name:"get" help:"Get messages from the queue." group:"MESSAGE"`
	Delete DeleteCommand `cmd:"" name:"delete" help:"Delete processed messages." group:"MESSAGE"`
	Retry  RetryCommand  `cmd:"" name:"retry" help:"Return messages to the queue for redelivery." group:"MESSAGE"`
	Work   WorkCommand   `cmd:"" name:"work" help:"Consume messages in a loop until interrupted." group:"MESSAGE"`
}

type AddCommand struct {
	Body string `arg:"" name:"body" help:"Message body"`
}

type GetCommand struct {
	Count int `name:"count" help:"Number of messages to retrieve" default:"1"`
}

type DeleteCommand struct {
	IDs []string `arg:"" name:"ids" help:"Message identifiers"`
}

type RetryCommand struct {
	IDs []string `arg:"" name:"ids" help:"Message identifiers"`
}

type WorkCommand struct {
	Count    int           `name:"count" help:"Messages to pull per poll" default:"1"`
	Interval time.Duration `name:"interval" help:"Wait between polls when the queue is empty" default:"1s"`
}

func (cmd *AddCommand) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	defer client.Close()

	id, err := client.AddMessage(ctx.ctx, cmd.Body)
	if err != nil {
		return err
	}

	fmt.Println(id)
	return nil
}

func (cmd *GetCommand) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	defer client.Close()

	msgs, err := client.GetMessages(ctx.ctx, cmd.Count)
	if err != nil {
		return err
	}

	return printJSON(msgs)
}

func (cmd *DeleteCommand) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	defer client.Close()

	return client.DeleteMessages(ctx.ctx, cmd.IDs...)
}

func (cmd *RetryCommand) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	defer client.Close()

	return client.RetryMessages(ctx.ctx, cmd.IDs...)
}

func (cmd *WorkCommand) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	defer client.Close()

	for {
		msgs, err := client.GetMessages(ctx.ctx, cmd.Count)
		if err != nil {
			return err
		}

		for _, msg := range msgs {
			if err := printJSON(msg); err != nil {
				return err
			}
			if err := client.DeleteMessages(ctx.ctx, msg.ID); err != nil {
				return err
			}
		}

		if len(msgs) > 0 {
			continue
		}

		select {
		case <-ctx.ctx.Done():
			return nil
		case <-time.After(cmd.Interval):
		}
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
