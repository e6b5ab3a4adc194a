// Package discovery finds nPoint devices via mDNS/DNS-SD.
//
// Newer nPoint firmware announces itself as an "_http._tcp" service with a
// hostname of the form "nPoint<serial>.local". Browsing for those
// announcements is a passive alternative to sweeping a CIDR block: no
// traffic is sent to hosts that are not devices. It only sees devices on
// the local link, so the active sweep remains the primary discovery path.
package discovery
