// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/textproto"

	"github.com/jlaffaye/ftp"

	"github.com/pdiddy/tsasn1/pkg/types"
)

const (
	DefaultFTPHost    = "ftp.3gpp.org"
	anonymousUser     = "anonymous"
	anonymousPassword = "anonymous"
	// ftpFileUnavailable is the reply code for a missing file or directory.
	ftpFileUnavailable = 550
)

// ftpConn is the subset of *ftp.ServerConn the fetcher uses.
type ftpConn interface {
	Login(user, password string) error
	ChangeDir(path string) error
	NameList(path string) ([]string, error)
	Retr(path string) (io.ReadCloser, error)
	Quit() error
}

type dialFunc func(ctx context.Context, cfg types.ArchiveConfig) (ftpConn, error)

// FTPFetcher reads the archive over FTP, one connection per call.
type FTPFetcher struct {
	cfg  types.ArchiveConfig
	dial dialFunc
}

// NewFTPFetcher returns a fetcher for cfg.FTPHost (default ftp.3gpp.org).
// Empty credentials log in anonymously.
func NewFTPFetcher(cfg types.ArchiveConfig) *FTPFetcher {
	return &FTPFetcher{cfg: cfg, dial: dialFTP}
}

// Listing changes to the release directory and asks for a long name list,
// which the archive server answers in fixed-width DOS format.
func (f *FTPFetcher) Listing(ctx context.Context, number string) ([]string, error) {
	c, err := f.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Quit()

	dir := "/" + Dir(number)
	if err := c.ChangeDir(dir); err != nil {
		return nil, ftpError("changing to "+dir, err)
	}
	lines, err := c.NameList("-l")
	if err != nil {
		return nil, ftpError("listing "+dir, err)
	}
	return lines, nil
}

// Fetch downloads one release archive.
func (f *FTPFetcher) Fetch(ctx context.Context, number, token string) ([]byte, error) {
	c, err := f.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Quit()

	path := "/" + Path(number, token)
	r, err := c.Retr(path)
	if err != nil {
		return nil, ftpError("retrieving "+path, err)
	}
	defer r.Close()

	data, err := io.ReadAll(io.LimitReader(r, maxArchiveSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) > maxArchiveSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", path, maxArchiveSize)
	}
	return data, nil
}

func (f *FTPFetcher) connect(ctx context.Context) (ftpConn, error) {
	c, err := f.dial(ctx, f.cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", ftpAddr(f.cfg.FTPHost), err)
	}

	user, pass := f.cfg.FTPUser, f.cfg.FTPPassword
	if user == "" {
		user, pass = anonymousUser, anonymousPassword
	}
	if err := c.Login(user, pass); err != nil {
		c.Quit()
		return nil, fmt.Errorf("logging in as %s: %w", user, err)
	}
	return c, nil
}

// ftpError maps a 550 reply to ErrNotFound.
func ftpError(op string, err error) error {
	var tp *textproto.Error
	if errors.As(err, &tp) && tp.Code == ftpFileUnavailable {
		return fmt.Errorf("%s: %w: %v", op, ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func ftpAddr(host string) string {
	if host == "" {
		host = DefaultFTPHost
	}
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, "21")
	}
	return host
}

// serverConn adapts *ftp.ServerConn to ftpConn.
type serverConn struct {
	*ftp.ServerConn
}

func (s serverConn) Retr(path string) (io.ReadCloser, error) {
	r, err := s.ServerConn.Retr(path)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func dialFTP(ctx context.Context, cfg types.ArchiveConfig) (ftpConn, error) {
	opts := []ftp.DialOption{ftp.DialWithContext(ctx)}
	if cfg.Timeout > 0 {
		opts = append(opts, ftp.DialWithTimeout(cfg.Timeout))
	}
	c, err := ftp.Dial(ftpAddr(cfg.FTPHost), opts...)
	if err != nil {
		return nil, err
	}
	return serverConn{c}, nil
}
