// Package certificates provides the self signed certificate of the agent's HTTPS server.
package certificates

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"math/big"
	"net"
	"time"
)

const (
	organization       = "ForgedFate"
	organizationalUnit = "Export Agent"
	keyBits            = 4096
)

// GenerateSelfSignedCertificate returns a certificate valid until expire for the
// given hosts. Hosts that parse as IP addresses go to the IP SANs, the others
// to the DNS SANs. localhost is always included.
func GenerateSelfSignedCertificate(expire time.Time, hosts ...string) (*x509.Certificate, *rsa.PrivateKey, error) {
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate serial number: %w", err)
	}

	csr := &x509.Certificate{
		SerialNumber: serial,
		Issuer: pkix.Name{
			Organization: []string{organization},
		},
		Subject: pkix.Name{
			CommonName:         "forgedfate",
			Organization:       []string{organization},
			OrganizationalUnit: []string{organizationalUnit},
		},
		NotBefore:             time.Now(),
		NotAfter:              expire,
		IsCA:                  true,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		DNSNames:              []string{"localhost"},
		IPAddresses:           []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
	}
	for _, h := range hosts {
		if ip := net.ParseIP(h); ip != nil {
			csr.IPAddresses = append(csr.IPAddresses, ip)
			continue
		}
		if h != "" && h != "localhost" {
			csr.DNSNames = append(csr.DNSNames, h)
		}
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate rsa private key: %w", err)
	}

	certData, err := x509.CreateCertificate(rand.Reader, csr, csr, privateKey.Public(), privateKey)
	if err != nil {
		return nil, nil, err
	}

	cert, err := x509.ParseCertificate(certData)
	if err != nil {
		return nil, nil, err
	}

	return cert, privateKey, nil
}
