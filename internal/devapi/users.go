package devapi

import (
	"errors"
	"strings"
	"sync"

	"github.com/matthewhartstonge/argon2"

	"github.com/Makepad-fr/shopfront/internal/model"
)

var (
	errUnknownUser   = errors.New("unknown user")
	errWrongPassword = errors.New("wrong password")
)

type account struct {
	user model.User
	hash string
}

// Directory is the in-memory user table. Passwords are argon2 encoded.
type Directory struct {
	mu     sync.RWMutex
	byName map[string]*account
	byID   map[int]*account
	nextID int
	argon  argon2.Config
}

func NewDirectory() *Directory {
	return &Directory{
		byName: map[string]*account{},
		byID:   map[int]*account{},
		nextID: 1,
		argon:  argon2.DefaultConfig(),
	}
}

// Add registers a user and returns it with its assigned id.
func (d *Directory) Add(name, email, password string) (model.User, error) {
	hash, err := d.hashPassword(password)
	if err != nil {
		return model.User{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	key := strings.ToLower(name)
	if _, ok := d.byName[key]; ok {
		return model.User{}, errors.New("name already registered")
	}
	a := &account{user: model.User{ID: d.nextID, Name: name, Email: email}, hash: hash}
	d.nextID++
	d.byName[key] = a
	d.byID[a.user.ID] = a
	return a.user, nil
}

// Authenticate checks name and password.
func (d *Directory) Authenticate(name, password string) (model.User, error) {
	a, ok := d.lookup(func() *account { return d.byName[strings.ToLower(name)] })
	if !ok {
		return model.User{}, errUnknownUser
	}
	if !verifyPassword(a.hash, password) {
		return model.User{}, errWrongPassword
	}
	return a.user, nil
}

// ChangePassword replaces the hash after verifying the old password.
func (d *Directory) ChangePassword(id int, oldPassword, newPassword string) error {
	a, ok := d.lookup(func() *account { return d.byID[id] })
	if !ok {
		return errUnknownUser
	}
	if !verifyPassword(a.hash, oldPassword) {
		return errWrongPassword
	}
	hash, err := d.hashPassword(newPassword)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.byID[id].hash = hash
	d.mu.Unlock()
	return nil
}

// lookup returns a snapshot of the matching account.
func (d *Directory) lookup(find func() *account) (account, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a := find()
	if a == nil {
		return account{}, false
	}
	return *a, true
}

func (d *Directory) hashPassword(password string) (string, error) {
	encoded, err := d.argon.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func verifyPassword(encodedHash, password string) bool {
	ok, err := argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
	return err == nil && ok
}
