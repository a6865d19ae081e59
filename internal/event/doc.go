/*
Package event provides a pub/sub event system for rpgbot activity.

Gateways publish an event for every chat message they handle, and the command
reloader publishes one whenever the command set is rebuilt. Subscribers are
plain functions; they receive the typed event directly.

# Event Types

  - message.received: a gateway accepted a message
  - message.ignored: the message came from a bot, was empty, or had no known prefix
  - command.invoked: a command ran successfully
  - command.failed: parsing or the handler failed
  - commands.reloaded: the command set was rebuilt

# Streaming

Every event is also forwarded as JSON to the watermill gochannel topic
"rpgbot.events". Stream subscribes to it; the WebSocket gateway uses this to
push bot activity to connected clients.

	bus := event.NewBus()
	defer bus.Close()

	unsub := bus.Subscribe(event.CommandFailed, func(e event.Event) {
		data := e.Data.(event.CommandFailedData)
		log.Printf("%s failed: %s", data.Command, data.Error)
	})
	defer unsub()

Publish delivers asynchronously, one goroutine per subscriber. PublishSync
calls subscribers in order before returning.
*/
package event
