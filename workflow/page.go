package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/tidepool-org/landing/models"
	"github.com/tidepool-org/landing/roster"
	"github.com/tidepool-org/landing/validate"
)

// PageCreation drives the page creation dialog and its invitee roster.
type PageCreation struct {
	id        string
	env       Env
	draft     models.PageDraft
	roster    *roster.Roster
	close     func()
	logger    *zap.SugaredLogger
	unmounted bool
}

// NewPageCreation starts a fresh draft with an empty roster. close is called
// once the page is created and must close the owning dialog.
func NewPageCreation(env Env, close func()) *PageCreation {
	env = env.withDefaults()
	id := newID()
	return &PageCreation{
		id:     id,
		env:    env,
		draft:  models.NewPageDraft(),
		roster: roster.New(),
		close:  close,
		logger: env.Logger.With(zap.String("workflow", "createPage"), zap.String("id", id)),
	}
}

func (p *PageCreation) ID() string {
	return p.id
}

// Draft returns the page draft with the current roster.
func (p *PageCreation) Draft() models.PageDraft {
	draft := p.draft
	draft.Invitees = p.roster.List()
	return draft
}

func (p *PageCreation) EditField(name models.FieldName, value string) error {
	if p.unmounted {
		return models.ErrUnmounted
	}
	return p.draft.Set(name, value)
}

// AddInvitee adds a user to the roster. An empty role means the role
// currently selected in the roster inputs. A successful add clears the email
// input and keeps the role.
func (p *PageCreation) AddInvitee(email string, role models.Role) error {
	if p.unmounted {
		return models.ErrUnmounted
	}
	if role == "" {
		role = p.draft.InviteeRole
	}
	if err := p.roster.Add(email, role); err != nil {
		p.logger.Debugw("invitee rejected", zap.Error(err))
		return err
	}
	p.draft.InviteeEmail = ""
	return nil
}

// RemoveInvitee removes a user from the roster. Unknown emails are ignored.
func (p *PageCreation) RemoveInvitee(email string) error {
	if p.unmounted {
		return models.ErrUnmounted
	}
	p.roster.Remove(email)
	return nil
}

// Submit creates the page when it has a name and a category. The roster may
// be empty.
func (p *PageCreation) Submit(ctx context.Context) (models.Notice, error) {
	if p.unmounted {
		return models.Notice{}, models.ErrUnmounted
	}
	if err := validate.Fields(p.draft.Fields()).Err(); err != nil {
		p.logger.Debugw("page rejected", zap.Error(err))
		return models.Notice{}, err
	}

	name := p.draft.PageName
	notify(ctx, p.env.Notifier, p.logger, models.Acknowledgement{
		Form:     models.FormCreatePage,
		Subject:  name,
		Invitees: p.roster.Len(),
	})
	p.logger.Infow("page created", "invitees", p.roster.Len())
	if p.close != nil {
		p.close()
	}
	return models.NewSuccess(models.MessagePageCreated, map[string]interface{}{"PageName": name}), nil
}

// Unmount discards the draft and the roster.
func (p *PageCreation) Unmount() {
	p.unmounted = true
	p.roster.Clear()
	p.draft = models.NewPageDraft()
}

func (p *PageCreation) Unmounted() bool {
	return p.unmounted
}
