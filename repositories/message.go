package repositories

import (
	"fmt"
	"log/slog"
	"profiler-viz/domain"
	"profiler-viz/errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/lo/mutable"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	messagePrefix     = "msg:"
	sequencePrefix    = "seq:"
	sequenceBandwidth = 100
)

type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
	mu            sync.Mutex
	sequences     map[string]*badger.Sequence
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) *MessageRepository {
	return &MessageRepository{
		db:            db,
		log:           log,
		limitMessages: limitMessages,
		sequences:     make(map[string]*badger.Sequence),
	}
}

// StoreMessage persists a message at the end of the profile's timeline.
// The key is formatted as "msg:{profile}:{seq_padded}:{uuid}" so a prefix scan
// returns messages in recording order. The returned sequence is the
// position key of the message.
func (m *MessageRepository) StoreMessage(profile string, message domain.Message) (uint64, error) {
	if profile == "" || strings.Contains(profile, ":") {
		return 0, fmt.Errorf("%w: %q", errors.ErrInvalidProfile, profile)
	}
	seq, err := m.sequence(profile)
	if err != nil {
		return 0, err
	}
	n, err := seq.Next()
	if err != nil {
		return 0, err
	}
	key := fmt.Sprintf("%s%s:%019d:%s", messagePrefix, profile, n, message.ID)
	value, err := encodeMessage(message)
	if err != nil {
		return 0, err
	}
	err = m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	return n, err
}

// GetMessages retrieves the timeline of a profile using a reverse prefix scan,
// so a configured limitMessages keeps the most recent messages.
// The result is in recording order and carries the stored sequences.
func (m *MessageRepository) GetMessages(profile string) ([]domain.RecordedMessage, error) {
	var messages []domain.RecordedMessage
	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := messagePrefix + profile + ":"
		prefix := []byte(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Past the highest padded sequence, then walk back
		seekKey := append([]byte(prefixStr), []byte("9999999999999999999;")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(messages) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d message reached", *m.limitMessages))
				break
			}
			item := it.Item()
			seq, err := parseSeq(string(item.Key()[len(prefixStr):]))
			if err != nil {
				return err
			}
			err = item.Value(func(value []byte) error {
				message, err := decodeMessage(value)
				if err != nil {
					return err
				}
				messages = append(messages, domain.RecordedMessage{Seq: seq, Message: message})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	mutable.Reverse(messages)
	return messages, err
}

// Profiles lists every profile holding at least one message.
func (m *MessageRepository) Profiles() ([]string, error) {
	var profiles []string
	err := m.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(messagePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rest := strings.TrimPrefix(string(it.Item().Key()), messagePrefix)
			profile, _, found := strings.Cut(rest, ":")
			if found {
				profiles = append(profiles, profile)
			}
		}
		return nil
	})
	return lo.Uniq(profiles), err
}

// Close releases the leased sequence ranges.
func (m *MessageRepository) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for profile, seq := range m.sequences {
		if err := seq.Release(); err != nil {
			m.log.Warn("Failed to release sequence", "profile", profile, "error", err)
		}
		delete(m.sequences, profile)
	}
	return nil
}

func (m *MessageRepository) sequence(profile string) (*badger.Sequence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if seq, ok := m.sequences[profile]; ok {
		return seq, nil
	}
	seq, err := m.db.GetSequence([]byte(sequencePrefix+profile), sequenceBandwidth)
	if err != nil {
		return nil, err
	}
	m.sequences[profile] = seq
	return seq, nil
}

// parseSeq reads the padded sequence leading "{seq}:{uuid}".
func parseSeq(rest string) (uint64, error) {
	raw, _, found := strings.Cut(rest, ":")
	if !found {
		return 0, fmt.Errorf("%w: key %q", errors.ErrInvalidPayload, rest)
	}
	seq, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return seq, nil
}

func encodeMessage(message domain.Message) ([]byte, error) {
	st, err := structpb.NewStruct(map[string]any{
		"id":      message.ID.String(),
		"source":  message.Source,
		"content": message.Content,
		"at":      message.At.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(st)
}

func decodeMessage(value []byte) (domain.Message, error) {
	var st structpb.Struct
	if err := proto.Unmarshal(value, &st); err != nil {
		return domain.Message{}, err
	}
	fields := st.GetFields()
	id, err := uuid.Parse(fields["id"].GetStringValue())
	if err != nil {
		return domain.Message{}, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	at, err := time.Parse(time.RFC3339Nano, fields["at"].GetStringValue())
	if err != nil {
		return domain.Message{}, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return domain.Message{
		ID:      id,
		Source:  fields["source"].GetStringValue(),
		Content: fields["content"].GetStringValue(),
		At:      at,
	}, nil
}
