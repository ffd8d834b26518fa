package broker

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/huntmaster/hunt-services/internal/comm"
	"github.com/huntmaster/hunt-services/internal/huntsvc/handlers"
	"github.com/huntmaster/hunt-services/internal/huntsvc/service"
)

// Broker answers progress-view requests the polling gateway sends over NATS.
type Broker struct {
	Conn     *nats.Conn
	Progress *service.ProgressService
}

func NewBroker(nc *nats.Conn, progress *service.ProgressService) *Broker {
	return &Broker{Conn: nc, Progress: progress}
}

// SubscribeViewService starts answering requests on the view subject.
func (b *Broker) SubscribeViewService() (*nats.Subscription, error) {
	return b.Conn.Subscribe(comm.SubjectView, b.handleMessage)
}

func (b *Broker) handleMessage(msgNat *nats.Msg) {
	msg := &comm.Message{}
	if err := json.Unmarshal(msgNat.Data, msg); err != nil {
		log.Errorf("Error nats message %s", err)
		b.reply(msgNat, comm.Reply{Code: http.StatusBadRequest, Error: "malformed message"})
		return
	}

	switch msg.Type {
	case comm.TypeProgress:
		req := comm.ProgressRequest{}
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			b.reply(msgNat, comm.Reply{Code: http.StatusBadRequest, Error: "malformed progress request"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		view, err := b.Progress.Progress(ctx, req.TeamID, req.UserID)
		if err != nil {
			log.Errorf("Error [ProgressService.Progress] %s", err)
			b.reply(msgNat, comm.Reply{Code: handlers.ErrorStatus(err), Error: err.Error()})
			return
		}

		data, err := json.Marshal(view)
		if err != nil {
			b.reply(msgNat, comm.Reply{Code: http.StatusInternalServerError, Error: "failed to encode view"})
			return
		}
		b.reply(msgNat, comm.Reply{Code: http.StatusOK, Data: data})

	default:
		log.Warnf("unknown view.service message type %q", msg.Type)
		b.reply(msgNat, comm.Reply{Code: http.StatusBadRequest, Error: "unknown message type"})
	}
}

func (b *Broker) reply(msgNat *nats.Msg, r comm.Reply) {
	if msgNat.Reply == "" {
		return
	}
	data, err := json.Marshal(r)
	if err != nil {
		log.Errorf("Error encoding reply %s", err)
		return
	}
	if err := msgNat.Respond(data); err != nil {
		log.Errorf("Error responding on %s: %s", msgNat.Subject, err)
	}
}
