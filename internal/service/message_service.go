package service

import (
	"context"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/internal/repository"
	"github.com/classpress/forumcore/pkg/apperror"
)

type SendMessageInput struct {
	Sender   string `validate:"required"`
	Receiver string `validate:"required"`
	Subject  string `validate:"max=255"`
	Content  string `validate:"required"`
}

type MessageService interface {
	Send(ctx context.Context, input SendMessageInput) (*model.Message, error)
	Inbox(ctx context.Context, receiver string) ([]*model.Message, error)
	Sent(ctx context.Context, sender string) ([]*model.Message, error)
	MarkRead(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type messageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
}

func NewMessageService(messages repository.MessageRepository, users repository.UserRepository) MessageService {
	return &messageService{messages: messages, users: users}
}

func (s *messageService) Send(ctx context.Context, input SendMessageInput) (*model.Message, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	for _, username := range []string{input.Sender, input.Receiver} {
		exists, err := s.users.Exists(ctx, username)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperror.New("user "+username+" does not exist", apperror.ErrForeignKey)
		}
	}

	sender, receiver := input.Sender, input.Receiver
	msg := &model.Message{
		Sender:   &sender,
		Receiver: &receiver,
		Subject:  input.Subject,
		Content:  input.Content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *messageService) Inbox(ctx context.Context, receiver string) ([]*model.Message, error) {
	return s.messages.FindByReceiver(ctx, receiver)
}

func (s *messageService) Sent(ctx context.Context, sender string) ([]*model.Message, error) {
	return s.messages.FindBySender(ctx, sender)
}

func (s *messageService) MarkRead(ctx context.Context, id uint) error {
	return s.messages.MarkRead(ctx, id)
}

func (s *messageService) Delete(ctx context.Context, id uint) error {
	return s.messages.Delete(ctx, id)
}
