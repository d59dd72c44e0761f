package probe

import (
	"fmt"
	"net/http"

	"github.com/jcmturner/gokrb5/v8/client"
	krbconfig "github.com/jcmturner/gokrb5/v8/config"
	"github.com/jcmturner/gokrb5/v8/credentials"
	"github.com/jcmturner/gokrb5/v8/spnego"
)

// KerberosNegotiator signs requests with a SPNEGO token built from the
// ambient credential cache. No username or password is involved.
type KerberosNegotiator struct {
	cl *client.Client
}

// NewKerberosNegotiator loads krb5.conf and the credential cache.
func NewKerberosNegotiator(krb5Conf, ccachePath string) (*KerberosNegotiator, error) {
	cfg, err := krbconfig.Load(krb5Conf)
	if err != nil {
		return nil, fmt.Errorf("failed to load krb5 config %s: %w", krb5Conf, err)
	}
	ccache, err := credentials.LoadCCache(ccachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load credential cache %s (run kinit?): %w", ccachePath, err)
	}
	cl, err := client.NewFromCCache(ccache, cfg, client.DisablePAFXFAST(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create kerberos client: %w", err)
	}
	return &KerberosNegotiator{cl: cl}, nil
}

// SetHeader adds "Authorization: Negotiate <token>" for HTTP/<host>.
func (k *KerberosNegotiator) SetHeader(r *http.Request) error {
	return spnego.SetSPNEGOHeader(k.cl, r, "")
}

// Close destroys the kerberos client session.
func (k *KerberosNegotiator) Close() {
	k.cl.Destroy()
}
