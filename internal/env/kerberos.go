package env

import (
	"github.com/gethue/hue-probe/internal/config"
	"github.com/gethue/hue-probe/internal/util"
)

// KerberosStatus describes the ambient Kerberos material SPNEGO needs.
type KerberosStatus struct {
	CCache        string
	Krb5Conf      string
	CCacheFound   bool
	Krb5ConfFound bool
}

// Ready reports whether both the credential cache and krb5.conf exist.
func (k KerberosStatus) Ready() bool {
	return k.CCacheFound && k.Krb5ConfFound
}

// DetectKerberos resolves the credential cache and krb5.conf for cfg,
// falling back to the KRB5CCNAME/KRB5_CONFIG conventions.
func DetectKerberos(cfg *config.Config) KerberosStatus {
	var st KerberosStatus
	if cfg != nil {
		st.CCache = cfg.Kerberos.CCache
		st.Krb5Conf = cfg.Kerberos.Krb5Conf
	}
	if st.CCache == "" {
		st.CCache = config.DefaultCCache()
	}
	if st.Krb5Conf == "" {
		st.Krb5Conf = config.DefaultKrb5Conf()
	}
	st.CCacheFound = util.FileExists(st.CCache)
	st.Krb5ConfFound = util.FileExists(st.Krb5Conf)
	return st
}
