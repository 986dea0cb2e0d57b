// Package bot forwards job board activity to an administrator's Telegram chat.
package bot

import (
	"errors"
	"fmt"

	"github.com/asaskevich/EventBus"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/job-portal/internal/domain/events"
	log "github.com/sirupsen/logrus"
)

type Notifier struct {
	api    apiInterface
	chatID int64
	bus    EventBus.Bus
}

func NewNotifier(token string, adminChatID int64, bus EventBus.Bus) (*Notifier, error) {

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	if err = tgbotapi.SetLogger(log.StandardLogger()); err != nil {
		return nil, err
	}

	return newNotifier(api, adminChatID, bus)
}

func newNotifier(api apiInterface, adminChatID int64, bus EventBus.Bus) (*Notifier, error) {

	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	n := &Notifier{api: api, chatID: adminChatID, bus: bus}

	for topic, handler := range n.handlers() {
		if err := bus.SubscribeAsync(topic, handler, false); err != nil {
			return nil, fmt.Errorf("couldn't subscribe to %s: %w", topic, err)
		}
	}
	return n, nil
}

func (n *Notifier) handlers() map[string]any {
	return map[string]any{
		events.JobCreatedTopic:           n.onJobCreated,
		events.JobUpdatedTopic:           n.onJobUpdated,
		events.JobDeletedTopic:           n.onJobDeleted,
		events.ApplicationSubmittedTopic: n.onApplicationSubmitted,
	}
}

// Stop unsubscribes from the bus and waits for messages that are still being sent.
func (n *Notifier) Stop() {
	for topic, handler := range n.handlers() {
		if err := n.bus.Unsubscribe(topic, handler); err != nil {
			log.Warnf("couldn't unsubscribe from %s: %v", topic, err)
		}
	}
	n.bus.WaitAsync()
}

func (n *Notifier) onJobCreated(event events.JobCreated) {
	n.send(fmt.Sprintf("New job posted by %v: \"%v\" at %v, %v",
		event.CreatedBy, event.Job.Title, event.Job.CompanyName, event.Job.Location))
}

func (n *Notifier) onJobUpdated(event events.JobUpdated) {
	n.send(fmt.Sprintf("Job \"%v\" (id %v) was updated by %v", event.Job.Title, event.Job.ID, event.UpdatedBy))
}

func (n *Notifier) onJobDeleted(event events.JobDeleted) {
	n.send(fmt.Sprintf("Job \"%v\" (id %v) was deleted by %v", event.Title, event.JobID, event.DeletedBy))
}

func (n *Notifier) onApplicationSubmitted(event events.ApplicationSubmitted) {
	a := event.Application
	n.send(fmt.Sprintf("New application for \"%v\" from %v <%v>", event.JobTitle, a.ApplicantName, a.ApplicantEmail))
}

func (n *Notifier) send(text string) {
	_, _ = sendWithLogError(n.api, tgbotapi.NewMessage(n.chatID, text))
}
