package publish

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/logger"
	"hackathon-radar/pkg/store"
)

type SFTPConfig struct {
	Host      string
	Port      int
	User      string
	Pass      string
	RemoteDir string
	FileName  string
	// KnownHosts is an OpenSSH known_hosts file. Empty disables host key
	// checking.
	KnownHosts string
	Timeout    time.Duration
}

// SFTP uploads the dataset JSON to a static host.
type SFTP struct {
	cfg SFTPConfig
	log *logger.Logger
}

func NewSFTP(cfg SFTPConfig, log *logger.Logger) *SFTP {
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.RemoteDir == "" {
		cfg.RemoteDir = "/"
	}
	if cfg.FileName == "" {
		cfg.FileName = "hackathons.json"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SFTP{cfg: cfg, log: log.Component("sftp")}
}

func (p *SFTP) Name() string { return "sftp" }

func (p *SFTP) Publish(ctx context.Context, dataset domain.Dataset) error {
	if p.cfg.Host == "" || p.cfg.User == "" || p.cfg.Pass == "" {
		return fmt.Errorf("sftp: missing SFTP_HOST / SFTP_USER / SFTP_PASS")
	}
	data, err := store.EncodeJSON(dataset)
	if err != nil {
		return fmt.Errorf("sftp: encode dataset: %w", err)
	}

	cb, err := p.hostKeyCallback()
	if err != nil {
		return err
	}
	sshCfg := &ssh.ClientConfig{
		User:            p.cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(p.cfg.Pass)},
		HostKeyCallback: cb,
		Timeout:         p.cfg.Timeout,
	}
	addr := fmt.Sprintf("%s:%d", p.cfg.Host, p.cfg.Port)

	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshCfg)
		ch <- dialRes{client: c, err: err}
	}()

	var sshClient *ssh.Client
	select {
	case <-ctx.Done():
		// the dial goroutine still owns its client
		go func() {
			if r := <-ch; r.client != nil {
				_ = r.client.Close()
			}
		}()
		return fmt.Errorf("sftp: dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return fmt.Errorf("sftp: dial error: %w", r.err)
		}
		sshClient = r.client
	}
	defer sshClient.Close()

	sftpCli, err := sftp.NewClient(sshClient)
	if err != nil {
		return fmt.Errorf("sftp: new client: %w", err)
	}
	defer sftpCli.Close()

	remotePath, err := upload(ctx, sftpCli, p.cfg.RemoteDir, p.cfg.FileName, data)
	if err != nil {
		return err
	}
	p.log.Info("dataset uploaded", "host", p.cfg.Host, "path", remotePath, "records", len(dataset), "bytes", len(data))
	return nil
}

func (p *SFTP) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if p.cfg.KnownHosts == "" {
		p.log.Warn("SFTP_KNOWN_HOSTS not set, host key is not verified")
		return ssh.InsecureIgnoreHostKey(), nil
	}
	cb, err := knownhosts.New(p.cfg.KnownHosts)
	if err != nil {
		return nil, fmt.Errorf("sftp: known hosts %s: %w", p.cfg.KnownHosts, err)
	}
	return cb, nil
}

// upload writes data next to the target and renames it into place, so the
// static host never serves a half-written file. It returns the final path.
func upload(ctx context.Context, cli *sftp.Client, dir, name string, data []byte) (string, error) {
	if err := cli.MkdirAll(dir); err != nil {
		return "", fmt.Errorf("sftp: mkdir %s: %w", dir, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	remotePath := path.Join(dir, name)
	tmpPath := remotePath + ".tmp"
	dst, err := cli.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("sftp: create remote file: %w", err)
	}
	if _, err := dst.Write(data); err != nil {
		_ = dst.Close()
		_ = cli.Remove(tmpPath)
		return "", fmt.Errorf("sftp: upload copy: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = cli.Remove(tmpPath)
		return "", fmt.Errorf("sftp: close remote file: %w", err)
	}

	if err := cli.PosixRename(tmpPath, remotePath); err != nil {
		// servers without posix-rename@openssh.com refuse to overwrite
		_ = cli.Remove(remotePath)
		if err := cli.Rename(tmpPath, remotePath); err != nil {
			_ = cli.Remove(tmpPath)
			return "", fmt.Errorf("sftp: rename %s: %w", tmpPath, err)
		}
	}
	return remotePath, nil
}
