// Package mongodb mirrors processed transactions, audit reports and merkle
// checkpoints into an operator database. The archive is advisory, it is
// never on the integrity path.
package mongodb

import (
	"time"

	"gopkg.in/mgo.v2"

	"github.com/chainledger/ChainLedger/log"
)

var (
	database *mgo.Database
	session  *mgo.Session

	dialInfo *mgo.DialInfo

	retryDialInterval = 1 * time.Second
)

// HasSession has session connected
func HasSession() bool {
	return session != nil
}

// MongoServerInit init mongodb server session
func MongoServerInit(addrs []string, dbname, user, pass string) {
	initDialInfo(addrs, dbname, user, pass)
	mongoConnect()
	initCollections()
	go checkMongoSession()
}

func initDialInfo(addrs []string, db, user, pass string) {
	dialInfo = &mgo.DialInfo{
		Addrs:    addrs,
		Database: db,
		Username: user,
		Password: pass,
	}
}

func mongoConnect() {
	if session != nil { // when reconnect
		session.Close()
	}
	log.Info("[mongodb] connect database start", "addrs", dialInfo.Addrs, "dbName", dialInfo.Database)
	var err error
	for {
		session, err = mgo.DialWithInfo(dialInfo)
		if err == nil {
			break
		}
		log.Warn("[mongodb] dial error", "err", err)
		time.Sleep(retryDialInterval)
	}
	session.SetMode(mgo.Monotonic, true)
	session.SetSafe(&mgo.Safe{FSync: true})
	database = session.DB(dialInfo.Database)
	log.Info("[mongodb] connect database finished", "dbName", dialInfo.Database)
}

func checkMongoSession() {
	for {
		time.Sleep(60 * time.Second)
		if err := ensureMongoConnected(); err != nil {
			log.Warn("[mongodb] check session error", "err", err)
		}
	}
}

func ensureMongoConnected() (err error) {
	defer func() {
		if r := recover(); r != nil {
			mongoReconnect()
		}
	}()
	err = session.Ping()
	if err != nil {
		mongoReconnect()
	}
	return err
}

func mongoReconnect() {
	log.Info("[mongodb] reconnect database", "dbName", dialInfo.Database)
	mongoConnect()
	initCollections()
}
