package workflow

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tidepool-org/landing/models"
)

// ModalController owns the open flag of every dialog. Dialogs are
// independent: any number can be open at once and closing one never touches
// another.
type ModalController struct {
	open    map[models.ModalName]bool
	onOpen  map[models.ModalName][]func()
	onClose map[models.ModalName][]func()
	logger  *zap.SugaredLogger
}

func NewModalController(logger *zap.SugaredLogger) *ModalController {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	c := &ModalController{
		open:    map[models.ModalName]bool{},
		onOpen:  map[models.ModalName][]func(){},
		onClose: map[models.ModalName][]func(){},
		logger:  logger,
	}
	for _, name := range models.Modals {
		c.open[name] = false
	}
	return c
}

// OnOpen registers fn to run each time name goes from closed to open.
func (c *ModalController) OnOpen(name models.ModalName, fn func()) {
	c.onOpen[name] = append(c.onOpen[name], fn)
}

// OnClose registers fn to run each time name goes from open to closed.
func (c *ModalController) OnClose(name models.ModalName, fn func()) {
	c.onClose[name] = append(c.onClose[name], fn)
}

// Open opens a dialog. Opening an open dialog does nothing.
func (c *ModalController) Open(name models.ModalName) error {
	if !name.IsValid() {
		return errors.Wrapf(models.ErrUnknownModal, "opening %q", name)
	}
	if c.open[name] {
		return nil
	}
	c.open[name] = true
	c.logger.Debugw("modal opened", "modal", string(name))
	for _, fn := range c.onOpen[name] {
		fn()
	}
	return nil
}

// Close closes a dialog. Closing a closed dialog does nothing.
func (c *ModalController) Close(name models.ModalName) error {
	if !name.IsValid() {
		return errors.Wrapf(models.ErrUnknownModal, "closing %q", name)
	}
	if !c.open[name] {
		return nil
	}
	c.open[name] = false
	c.logger.Debugw("modal closed", "modal", string(name))
	for _, fn := range c.onClose[name] {
		fn()
	}
	return nil
}

// OverlayClick handles a click on the dimmed area around a dialog.
func (c *ModalController) OverlayClick(name models.ModalName) error {
	return c.Close(name)
}

// ContentClick handles a click inside a dialog. It is consumed there and never
// reaches the overlay.
func (c *ModalController) ContentClick(name models.ModalName) error {
	if !name.IsValid() {
		return errors.Wrapf(models.ErrUnknownModal, "clicking %q", name)
	}
	return nil
}

func (c *ModalController) IsOpen(name models.ModalName) bool {
	return c.open[name]
}

func (c *ModalController) Set() models.ModalSet {
	return models.ModalSet{
		SignupOpen:     c.open[models.ModalSignup],
		CreatePageOpen: c.open[models.ModalCreatePage],
	}
}
