// Package session sequences subkey derivation from a caller-supplied
// passphrase, header emission/parsing, and streaming through the cipher
// into the phased encrypt and decrypt operations. It is modeled on
// Picocrypt-NG's internal/volume package, with the Cookie carrying state
// between Prep and Copy and a Zero() that's safe to call on every exit
// path, collapsed from that package's seven or eight
// phases (zip preprocessing, keyfile handling, deniability, split) down to
// one state machine: HeaderRead -> ParamsValidated -> KeysDerived ->
// HeaderTagVerified -> Streaming -> Finalized.
package session

import (
	"fmt"
	"io"

	"github.com/daafuq/scryptenc/internal/crypto"
	"github.com/daafuq/scryptenc/internal/errors"
	"github.com/daafuq/scryptenc/internal/header"
	"github.com/daafuq/scryptenc/internal/log"
	"github.com/daafuq/scryptenc/internal/tuner"
	"github.com/daafuq/scryptenc/internal/util"
)

// cookieState tags a Cookie's single-use lifecycle: AwaitingCopy until its
// one Copy call consumes it, then Consumed.
type cookieState int

const (
	stateAwaitingCopy cookieState = iota
	stateConsumed
)

// Cookie is the opaque decrypt session object Prep produces and Copy
// consumes exactly once. It owns the verified header parameters, the
// derived subkeys, and the stream codec whose running HMAC has already
// absorbed the 96 header bytes.
type Cookie struct {
	Params header.Header
	keys   *crypto.Subkeys
	codec  *crypto.StreamCodec
	state  cookieState
}

// Zero wipes the cookie's key material. Safe to call more than once and
// safe to call on a nil Cookie.
func (c *Cookie) Zero() {
	if c == nil {
		return
	}
	c.keys.Zero()
	if c.codec != nil {
		c.codec.Zero()
	}
}

// Info is the parameter summary info mode prints.
type Info struct {
	LogN       uint8
	N          uint64
	R          uint32
	P          uint32
	Salt       []byte // copy of the header salt
	WorkingSet uint64 // bytes, per tuner.WorkingSetSize(LogN, R)
}

// Prep reads the 96-byte header, validates it structurally and against
// the decrypt budget, derives subkeys, and verifies the header HMAC. On
// any failure no Cookie is returned; up to 96 bytes may have been
// consumed from in.
func Prep(in io.Reader, passphrase []byte, budget tuner.Budget, force bool, logger log.Logger) (*Cookie, error) {
	buf := make([]byte, header.Size)
	if _, err := io.ReadFull(in, buf); err != nil {
		return nil, errors.New(errors.ERDFILE, "session.Prep: read header", err)
	}

	h, err := header.Decode(buf)
	if err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}

	physical, available, err := tuner.Default().Memory()
	if err != nil {
		return nil, err
	}
	throughput, err := tuner.Default().Throughput()
	if err != nil {
		return nil, err
	}
	memlimit := tuner.MemLimit(budget, physical, available)
	opslimit := tuner.OpsLimit(budget, throughput)

	params := tuner.Params{LogN: h.LogN, R: h.R, P: h.P}
	if err := tuner.ValidateForDecrypt(params, memlimit, opslimit, force); err != nil {
		return nil, err
	}

	keys, err := crypto.DeriveKeys(passphrase, h.Salt[:], h.LogN, h.R, h.P)
	if err != nil {
		return nil, err
	}

	if !header.VerifyHMAC(buf, keys.HmacKey) {
		keys.Zero()
		return nil, errors.New(errors.EPASS, "session.Prep: header HMAC", fmt.Errorf("passphrase is incorrect"))
	}

	logger.Info(fmt.Sprintf("decrypt parameters validated: N = %d, r = %d, p = %d",
		uint64(1)<<h.LogN, h.R, h.P))

	codec, err := crypto.NewStreamCodec(keys, buf)
	if err != nil {
		keys.Zero()
		return nil, err
	}

	return &Cookie{Params: *h, keys: keys, codec: codec, state: stateAwaitingCopy}, nil
}

// Copy streams the ciphertext body through the stream codec and verifies
// the final tag. cookie is consumed exactly once; calling Copy again is a
// programming error.
func Copy(cookie *Cookie, in io.Reader, out io.Writer) error {
	if cookie.state == stateConsumed {
		panic("session: Copy called on an already-consumed Cookie")
	}
	defer func() {
		cookie.state = stateConsumed
		cookie.Zero()
	}()

	buf := util.GetMiBBuffer()
	defer util.PutMiBBuffer(buf)

	var pending [crypto.TagSize]byte
	pendingLen := 0

	plain := make([]byte, len(buf))

	for {
		n, rerr := in.Read(buf[pendingLen:])
		total := pendingLen + n

		// Keep the last TagSize bytes unprocessed; they might be the
		// final tag rather than ciphertext.
		if total > crypto.TagSize {
			process := total - crypto.TagSize
			cookie.codec.DecryptChunk(plain[:process], buf[:process])
			if _, werr := out.Write(plain[:process]); werr != nil {
				return errors.New(errors.EWRFILE, "session.Copy: write plaintext", werr)
			}
			copy(buf, buf[process:total])
			pendingLen = total - process
		} else {
			pendingLen = total
		}

		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return errors.New(errors.ERDFILE, "session.Copy: read ciphertext", rerr)
		}
	}

	if pendingLen != crypto.TagSize {
		return errors.New(errors.EINVAL, "session.Copy", fmt.Errorf("truncated final tag: got %d bytes, want %d", pendingLen, crypto.TagSize))
	}
	copy(pending[:], buf[:pendingLen])

	if !cookie.codec.VerifyTag(pending[:]) {
		return errors.New(errors.EINVAL, "session.Copy", fmt.Errorf("final tag mismatch"))
	}
	return nil
}

// EncryptParams bundles the inputs Encrypt needs beyond the I/O streams.
type EncryptParams struct {
	Explicit *tuner.Params // nil selects automatically from budget
	Budget   tuner.Budget
	Force    bool
}

// Encrypt runs the single-phase encrypt pipeline in order: select or
// validate parameters, derive keys, write the header, encrypt the stream,
// then append the final tag.
func Encrypt(in io.Reader, out io.Writer, passphrase []byte, p EncryptParams, logger log.Logger) error {
	physical, available, err := tuner.Default().Memory()
	if err != nil {
		return err
	}
	throughput, err := tuner.Default().Throughput()
	if err != nil {
		return err
	}
	memlimit := tuner.MemLimit(p.Budget, physical, available)
	opslimit := tuner.OpsLimit(p.Budget, throughput)

	var params tuner.Params
	if p.Explicit != nil {
		params = *p.Explicit
		if err := tuner.ValidateExplicit(params, memlimit, opslimit, p.Force); err != nil {
			return err
		}
	} else {
		params = tuner.Select(memlimit, opslimit)
	}

	logger.Info(fmt.Sprintf("encrypt parameters chosen: N = %d, r = %d, p = %d",
		uint64(1)<<params.LogN, params.R, params.P))

	salt, err := crypto.RandomBytes(32)
	if err != nil {
		return err
	}

	keys, err := crypto.DeriveKeys(passphrase, salt, params.LogN, params.R, params.P)
	if err != nil {
		return err
	}
	defer keys.Zero()

	h := &header.Header{Version: header.Version, LogN: params.LogN, R: params.R, P: params.P}
	copy(h.Salt[:], salt)

	headerBytes := header.Encode(h, keys.HmacKey)
	if _, err := out.Write(headerBytes); err != nil {
		return errors.New(errors.EWRFILE, "session.Encrypt: write header", err)
	}

	codec, err := crypto.NewStreamCodec(keys, headerBytes)
	if err != nil {
		return err
	}
	defer codec.Zero()

	inBuf := util.GetMiBBuffer()
	defer util.PutMiBBuffer(inBuf)
	outBuf := make([]byte, len(inBuf))

	for {
		n, rerr := in.Read(inBuf)
		if n > 0 {
			codec.EncryptChunk(outBuf[:n], inBuf[:n])
			if _, werr := out.Write(outBuf[:n]); werr != nil {
				return errors.New(errors.EWRFILE, "session.Encrypt: write ciphertext", werr)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return errors.New(errors.ERDFILE, "session.Encrypt: read plaintext", rerr)
		}
	}

	tag := codec.Sum()
	if _, err := out.Write(tag); err != nil {
		return errors.New(errors.EWRFILE, "session.Encrypt: write final tag", err)
	}
	return nil
}

// ReadInfo parses the header and verifies its checksum, but not its HMAC
// (no passphrase is available).
func ReadInfo(in io.Reader) (Info, error) {
	buf := make([]byte, header.Size)
	if _, err := io.ReadFull(in, buf); err != nil {
		return Info{}, errors.New(errors.ERDFILE, "session.ReadInfo: read header", err)
	}
	h, err := header.Decode(buf)
	if err != nil {
		return Info{}, err
	}
	if err := h.Validate(); err != nil {
		return Info{}, err
	}
	return Info{
		LogN:       h.LogN,
		N:          uint64(1) << h.LogN,
		R:          h.R,
		P:          h.P,
		Salt:       append([]byte(nil), h.Salt[:]...),
		WorkingSet: tuner.WorkingSetSize(h.LogN, h.R),
	}, nil
}
