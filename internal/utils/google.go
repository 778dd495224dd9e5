package utils

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const googleDiscoveryURL = "https://accounts.google.com/.well-known/openid-configuration"

type googleDiscovery struct {
	Issuer  string `json:"issuer"`
	JWKSURI string `json:"jwks_uri"`
}

type googleJWK struct {
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Kid string `json:"kid"`
	N   string `json:"n"` // base64url
	E   string `json:"e"` // base64url
}

type googleJWKS struct {
	Keys []googleJWK `json:"keys"`
}

// GoogleClaims — проверенные утверждения из id_token
type GoogleClaims struct {
	Sub           string
	Email         string
	EmailVerified bool
	GivenName     string
	FamilyName    string
	Picture       string
}

// GoogleClient проверяет подпись/iss/aud/exp id_token'а Google.
// Один экземпляр на процесс, конфигурируется client_id при старте;
// JWKS кэшируется с обновлением раз в час.
type GoogleClient struct {
	ClientID string

	http   *http.Client
	mu     sync.RWMutex
	disc   *googleDiscovery
	discAt time.Time
	jwks   *googleJWKS
	jwksAt time.Time
}

func NewGoogleClient(clientID string) *GoogleClient {
	return &GoogleClient{
		ClientID: clientID,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *GoogleClient) discovery(ctx context.Context) (*googleDiscovery, error) {
	g.mu.RLock()
	disc := g.disc
	stale := time.Since(g.discAt) > 24*time.Hour
	g.mu.RUnlock()
	if disc != nil && !stale {
		return disc, nil
	}
	req, _ := http.NewRequestWithContext(ctx, "GET", googleDiscoveryURL, nil)
	resp, err := g.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var dd googleDiscovery
	if err := json.NewDecoder(resp.Body).Decode(&dd); err != nil {
		return nil, err
	}
	g.mu.Lock()
	g.disc = &dd
	g.discAt = time.Now()
	g.mu.Unlock()
	return &dd, nil
}

func (g *GoogleClient) getJWKS(ctx context.Context, uri string) (*googleJWKS, error) {
	g.mu.RLock()
	j := g.jwks
	age := time.Since(g.jwksAt)
	g.mu.RUnlock()
	if j != nil && age < 1*time.Hour {
		return j, nil
	}

	req, _ := http.NewRequestWithContext(ctx, "GET", uri, nil)
	resp, err := g.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("jwks http %d", resp.StatusCode)
	}
	var jj googleJWKS
	if err := json.NewDecoder(resp.Body).Decode(&jj); err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.jwks = &jj
	g.jwksAt = time.Now()
	g.mu.Unlock()
	return &jj, nil
}

func (g *GoogleClient) rsaKeyForKid(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	disc, err := g.discovery(ctx)
	if err != nil {
		return nil, err
	}
	jwks, err := g.getJWKS(ctx, disc.JWKSURI)
	if err != nil {
		return nil, err
	}
	for _, k := range jwks.Keys {
		if k.Kid == kid && strings.EqualFold(k.Kty, "RSA") {
			nb, err := base64.RawURLEncoding.DecodeString(k.N)
			if err != nil {
				return nil, err
			}
			eb, err := base64.RawURLEncoding.DecodeString(k.E)
			if err != nil {
				return nil, err
			}
			n := new(big.Int).SetBytes(nb)
			e := 0
			if len(eb) == 0 {
				e = 65537
			} else {
				for _, b := range eb {
					e = (e << 8) | int(b)
				}
			}
			return &rsa.PublicKey{N: n, E: e}, nil
		}
	}
	return nil, errors.New("kid not found")
}

// VerifyIDToken валидирует подпись, iss, aud и exp. Возвращает claims.
func (g *GoogleClient) VerifyIDToken(ctx context.Context, idToken string) (*GoogleClaims, error) {
	var header struct {
		Alg string `json:"alg"`
		Kid string `json:"kid"`
	}
	parts := strings.Split(idToken, ".")
	if len(parts) != 3 {
		return nil, errors.New("bad jwt format")
	}
	hb, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(hb, &header); err != nil {
		return nil, err
	}
	if header.Alg != "RS256" {
		return nil, fmt.Errorf("unexpected alg: %s", header.Alg)
	}

	key, err := g.rsaKeyForKid(ctx, header.Kid)
	if err != nil {
		return nil, err
	}
	tok, err := jwt.Parse(idToken, func(t *jwt.Token) (interface{}, error) { return key, nil }, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil || !tok.Valid {
		return nil, errors.New("invalid id_token")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims type")
	}

	iss, _ := claims["iss"].(string)
	if iss != "https://accounts.google.com" && iss != "accounts.google.com" {
		return nil, fmt.Errorf("bad iss: %s", iss)
	}
	audOK := false
	switch a := claims["aud"].(type) {
	case string:
		audOK = (a == g.ClientID)
	case []any:
		for _, v := range a {
			if s, _ := v.(string); s == g.ClientID {
				audOK = true
				break
			}
		}
	}
	if !audOK {
		return nil, errors.New("bad aud")
	}
	if expf, ok := claims["exp"].(float64); ok {
		if time.Unix(int64(expf), 0).Before(time.Now().Add(-30 * time.Second)) {
			return nil, errors.New("token expired")
		}
	}

	verified, _ := claims["email_verified"].(bool)
	out := &GoogleClaims{
		Sub:           strClaim(claims, "sub"),
		Email:         strClaim(claims, "email"),
		EmailVerified: verified,
		GivenName:     strClaim(claims, "given_name"),
		FamilyName:    strClaim(claims, "family_name"),
		Picture:       strClaim(claims, "picture"),
	}
	if out.Sub == "" {
		return nil, errors.New("missing sub")
	}
	return out, nil
}

func strClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
