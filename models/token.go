package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, admin oturum token'ının JWT claim'leri.
//
// Version, global token epoch sayacının token üretildiği andaki değeridir.
// Doğrulama sırasında store'daki güncel değerle karşılaştırılır — eşleşmeyen
// token, imzası ve süresi geçerli olsa bile reddedilir. Tek tek oturum kaydı
// tutmadan "tüm oturumları anında geçersiz kıl" bu sayede mümkündür.
//
// IP bilgilendirme amaçlıdır (log'larda kim nereden): doğrulamada ENFORCE
// edilmez — mobil ağlarda IP her an değişebilir.
type TokenClaims struct {
	Admin   bool   `json:"admin"`
	IP      string `json:"ip"`
	Version string `json:"version"`
	jwt.RegisteredClaims
}
