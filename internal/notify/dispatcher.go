package notify

import (
	"log"

	"gorm.io/gorm"

	"github.com/bookwellhq/booking-scheduler/internal/models"
)

type Event struct {
	BusinessID    uint
	Type          string
	Title         string
	Message       string
	AppointmentID *uint
}

// Dispatcher appends notification rows for the business off the
// request path. A failed or dropped notification never affects the
// booking that produced it.
type Dispatcher struct {
	db    *gorm.DB
	queue chan Event
}

func NewDispatcher(db *gorm.DB) *Dispatcher {
	d := &Dispatcher{
		db:    db,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		n := models.Notification{
			BusinessID:           ev.BusinessID,
			Type:                 ev.Type,
			Title:                ev.Title,
			Message:              ev.Message,
			RelatedAppointmentID: ev.AppointmentID,
		}
		if err := d.db.Create(&n).Error; err != nil {
			log.Println("notification error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		log.Println("notification queue full, dropping event")
	}
}
