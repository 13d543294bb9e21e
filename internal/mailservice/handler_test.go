package mailservice

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"inkpost/internal/common"
)

func TestSendActivationEmail(t *testing.T) {
	mockMC := new(MockConsumer)
	mockMailer := new(MockMailer)

	mockMC.On("Consume", common.ActivationEmailQueue).Return(mock.Anything, nil)

	ctx, cancel := context.WithCancel(context.Background())

	s := &MailService{
		mb:     mockMC,
		m:      mockMailer,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		ctx:    ctx,
		cancel: cancel,
	}

	t.Cleanup(s.Close)

	s.SendActivationEmail()

	assert.Eventually(t, mockMailer.IsCalled, time.Second, 10*time.Millisecond)
	assert.Equal(t, "test@example.com", mockMailer.GetEmail())

	mockMC.AssertExpectations(t)
}
