package rpc

import (
	"crypto/md5" // #nosec G501
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"strings"

	fasthex "github.com/tmthrgd/go-hex"
)

const digestQOPAuth = "auth"

var (
	ErrUnsupportedQOP       = errors.New("unsupported QOP")
	ErrUnsupportedAlgorithm = errors.New("unsupported digest algorithm")
)

// digest holds an RFC 2617 challenge as sent by epee's http server
type digest struct {
	QOP       string
	Algorithm string
	Realm     string
	Nonce     string
	Opaque    string
	Stale     string
}

func (d *digest) hasher() (hash.Hash, error) {
	if d.Algorithm == "" || strings.HasPrefix(strings.ToUpper(d.Algorithm), "MD5") {
		// #nosec G401
		return md5.New(), nil
	}
	return nil, ErrUnsupportedAlgorithm
}

// Hash returns the hex digest of data joined by ':'
func (d *digest) Hash(data ...[]byte) ([]byte, error) {
	hasher, err := d.hasher()
	if err != nil {
		return nil, err
	}

	for i, b := range data {
		if i > 0 {
			_, _ = hasher.Write([]byte{':'})
		}
		_, _ = hasher.Write(b)
	}
	sum := hasher.Sum(nil)
	dst := make([]byte, len(sum)*2)
	fasthex.Encode(dst, sum)
	return dst, nil
}

func (d *digest) Auth(method, uri, user, password string, requestCounter uint32, clientNonce string) (string, error) {
	if d.QOP != "" && d.QOP != digestQOPAuth {
		return "", ErrUnsupportedQOP
	}

	ha1, err := d.Hash([]byte(user), []byte(d.Realm), []byte(password))
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(d.Algorithm, "-sess") {
		if ha1, err = d.Hash(ha1, []byte(d.Nonce), []byte(clientNonce)); err != nil {
			return "", err
		}
	}

	ha2, err := d.Hash([]byte(method), []byte(uri))
	if err != nil {
		return "", err
	}

	var counter [4]byte
	binary.BigEndian.PutUint32(counter[:], requestCounter)
	nc := fasthex.EncodeToString(counter[:])

	var response []byte
	if d.QOP == "" {
		response, err = d.Hash(ha1, []byte(d.Nonce), ha2)
	} else {
		response, err = d.Hash(ha1, []byte(d.Nonce), []byte(nc), []byte(clientNonce), []byte(d.QOP), ha2)
	}
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Digest username=%q,realm=%q,nonce=%q,uri=%q", user, d.Realm, d.Nonce, uri)
	if d.QOP != "" {
		b.WriteString(",qop=" + d.QOP)
	}
	b.WriteString(",nc=" + nc)
	if d.QOP == digestQOPAuth || strings.HasSuffix(d.Algorithm, "-sess") {
		fmt.Fprintf(&b, ",cnonce=%q", clientNonce)
	}
	fmt.Fprintf(&b, ",response=%q", response)
	if d.Algorithm != "" {
		b.WriteString(",algorithm=" + d.Algorithm)
	}
	if d.Opaque != "" {
		fmt.Fprintf(&b, ",opaque=%q", d.Opaque)
	}

	return b.String(), nil
}

func (d *digest) set(k, v string) bool {
	switch k {
	case "qop":
		d.QOP = v
	case "algorithm":
		d.Algorithm = v
	case "realm":
		d.Realm = v
	case "nonce":
		d.Nonce = v
	case "opaque":
		d.Opaque = v
	case "stale":
		d.Stale = v
	default:
		return false
	}
	return true
}

// newDigest parses a WWW-Authenticate header value. Returns nil when it is not a valid Digest challenge.
func newDigest(str string) *digest {
	const prefix = "Digest "
	rest, ok := strings.CutPrefix(strings.TrimSpace(str), prefix)
	if !ok {
		return nil
	}

	d := new(digest)
	for len(rest) > 0 {
		key, after, found := strings.Cut(rest, "=")
		if !found {
			return nil
		}
		key = strings.TrimSpace(key)

		var value string
		if strings.HasPrefix(after, `"`) {
			end := strings.IndexByte(after[1:], '"')
			if end < 0 {
				return nil
			}
			value = after[1 : end+1]
			after = after[end+2:]
			// only a separator may follow a quoted value
			if after != "" && after[0] != ',' {
				return nil
			}
		} else {
			end := strings.IndexByte(after, ',')
			if end < 0 {
				end = len(after)
			}
			value = after[:end]
			after = after[end:]
		}

		if !d.set(key, value) {
			return nil
		}
		rest = strings.TrimPrefix(after, ",")
	}

	return d
}
