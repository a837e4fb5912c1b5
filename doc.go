//
//# pping
//
//pping measures round-trip latency to a single host with ICMP/ICMPv6 echo
//probes, like the classic ping command but with colored, structured output.
//
//```go
//package main
//
//import (
//    "context"
//    "os"
//    "os/signal"
//    "time"
//
//    "github.com/sirupsen/logrus"
//
//    "gitlab.bertha.cloud/partitio/isi/pping"
//)
//
//func main() {
//    cfg, err := pping.NewConfig("1.1.1.1", 4, time.Second, 2*time.Second)
//    if err != nil {
//        logrus.Fatal(err)
//    }
//    s, err := pping.NewSession(cfg)
//    if err != nil {
//        logrus.Fatal(err)
//    }
//    defer s.Close()
//
//    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//    defer stop()
//
//    report, err := s.Run(ctx)
//    if err != nil {
//        logrus.Fatal(err)
//    }
//    logrus.Infof("received %d of %d", report.Received, report.Transmitted)
//}
//```
//
//Raw ICMP sockets need root or CAP_NET_RAW.
package pping
