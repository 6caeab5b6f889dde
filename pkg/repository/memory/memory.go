package memory

import (
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	person    *personRepository
	gift      *giftRepository
	dismissal *dismissalRepository
	message   *messageRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		person:    newPersonRepository(),
		gift:      newGiftRepository(),
		dismissal: newDismissalRepository(),
		message:   newMessageRepository(),
	}
}

func (m *Memory) Person() interfaces.PersonRepository {
	return m.person
}

func (m *Memory) Gift() interfaces.GiftRepository {
	return m.gift
}

func (m *Memory) Dismissal() interfaces.DismissalRepository {
	return m.dismissal
}

func (m *Memory) Message() interfaces.MessageRepository {
	return m.message
}

func (m *Memory) Close() error {
	return nil
}
