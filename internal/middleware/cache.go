package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/event-hotel-booking/internal/config"
)

// captureWriter copies the response body into buf while forwarding it to
// the client.  At most limit bytes are kept when limit > 0.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	switch {
	case cw.limit <= 0:
		cw.buf.Write(b)
	case cw.size < cw.limit:
		remain := cw.limit - cw.size
		if int64(len(b)) <= remain {
			cw.buf.Write(b)
		} else {
			cw.buf.Write(b[:remain])
		}
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// userIndexKey names the Redis set listing every cached key of one user.
func userIndexKey(cfg config.CacheConfig, uid string) string {
	return cfg.Prefix + ":user:" + uid + ":keys"
}

// cacheKeyFrom scopes the entry to the caller, so one user's booking never
// leaks into another user's response.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context, uid string) string {
	r := c.Request()
	sum := sha1.Sum([]byte(r.Method + " " + c.Path() + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:user:%s:%x", cfg.Prefix, uid, sum[:])
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:], hdrJSON)
	copy(out[8+len(hdrJSON):], body)
	return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	header = make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, bs[8+hlen:], true
}

// NewRedisCache caches successful responses of the configured methods per
// authenticated user.  A successful request with any other method (a
// booking create or update) drops all of that user's entries, so a user
// reads their own write on the next GET.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	maxBody := int64(cfg.MaxBodyBytes)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := userKey(c)
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				err := next(c)
				if err == nil && c.Response().Status < http.StatusMultipleChoices {
					invalidateUser(c.Request().Context(), rdb, cfg, uid)
				}
				return err
			}

			ctx := c.Request().Context()
			key := cacheKeyFrom(cfg, c, uid)

			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				if status, hdr, body, ok := decodePayload(bs); ok {
					for k, vals := range hdr {
						if strings.EqualFold(k, echo.HeaderContentLength) {
							continue
						}
						for _, v := range vals {
							c.Response().Header().Add(k, v)
						}
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(status)
					_, _ = c.Response().Write(body)
					return nil
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if cw.status != http.StatusOK || (maxBody > 0 && cw.size > maxBody) {
				return nil
			}

			hdr := c.Response().Header().Clone()
			hdr.Del("X-Cache")
			payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes())
			if err != nil {
				return nil
			}
			bg := context.WithoutCancel(ctx)
			idx := userIndexKey(cfg, uid)
			_, err = rdb.TxPipelined(bg, func(p redis.Pipeliner) error {
				p.SetEx(bg, key, payload, ttl)
				p.SAdd(bg, idx, key)
				p.Expire(bg, idx, ttl)
				return nil
			})
			if err != nil {
				logrus.WithError(err).WithField("key", key).Debug("cache: store failed")
			}
			return nil
		}
	}
}

// invalidateUser deletes every cached response recorded for uid.
func invalidateUser(ctx context.Context, rdb *redis.Client, cfg config.CacheConfig, uid string) {
	ctx = context.WithoutCancel(ctx)
	idx := userIndexKey(cfg, uid)
	keys, err := rdb.SMembers(ctx, idx).Result()
	if err != nil {
		logrus.WithError(err).WithField("user", uid).Debug("cache: list keys failed")
		return
	}
	if err := rdb.Del(ctx, append(keys, idx)...).Err(); err != nil {
		logrus.WithError(err).WithField("user", uid).Debug("cache: invalidate failed")
	}
}
